// Package ingredient provides the Ingredient catalog.
// Ingredients are referenced by recipe lines and priced from purchase history;
// their price-per-unit is derived, never set directly by an operator.
package ingredient

import (
	"context"

	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/entity"
	"fournil/internal/core/measure"
	"fournil/internal/core/types"
)

// Category groups ingredients for catalog navigation.
type Category string

const (
	CategoryFlour     Category = "flour"
	CategorySugar     Category = "sugar"
	CategoryDairy     Category = "dairy"
	CategoryChocolate Category = "chocolate"
	CategoryNuts      Category = "nuts"
	CategoryOther     Category = "other"
)

// Ingredient represents a raw material used in recipes.
type Ingredient struct {
	entity.Catalog

	// Category groups the ingredient in the catalog
	Category Category `db:"category" json:"category"`

	// PurchaseUnit is the unit purchases are normally recorded in
	PurchaseUnit measure.Unit `db:"purchase_unit" json:"purchaseUnit"`

	// Active indicates the ingredient is available for new recipes
	Active bool `db:"active" json:"active"`

	// Stock tracking (optional; zero thresholds disable alerts)
	StockQty decimal.Decimal `db:"stock_qty" json:"stockQty"`
	StockMin decimal.Decimal `db:"stock_min" json:"stockMin"`
	StockMax decimal.Decimal `db:"stock_max" json:"stockMax"`

	// Derived from purchase history; written by the pricing engine only.
	PricePerUnit types.Money `db:"price_per_unit" json:"pricePerUnit"`
	PricePerGram types.Money `db:"price_per_gram" json:"pricePerGram"`

	// NoPurchaseData marks an ingredient with no purchase history yet.
	// Zero cost with this flag set is a valid, displayable state.
	NoPurchaseData bool `db:"no_purchase_data" json:"noPurchaseData"`
}

// New creates a new Ingredient with required fields.
func New(code, name string, category Category, unit measure.Unit) *Ingredient {
	return &Ingredient{
		Catalog:        entity.NewCatalog(code, name),
		Category:       category,
		PurchaseUnit:   unit,
		Active:         true,
		NoPurchaseData: true,
	}
}

// Validate implements entity.Validatable interface.
func (i *Ingredient) Validate(ctx context.Context) error {
	if err := i.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !i.PurchaseUnit.IsValid() {
		return apperror.NewValidation("invalid purchase unit").
			WithDetail("field", "purchaseUnit").
			WithDetail("value", string(i.PurchaseUnit))
	}

	if i.StockQty.IsNegative() || i.StockMin.IsNegative() || i.StockMax.IsNegative() {
		return apperror.NewValidation("stock quantities cannot be negative").
			WithDetail("field", "stock")
	}

	if !i.StockMax.IsZero() && i.StockMin.GreaterThan(i.StockMax) {
		return apperror.NewValidation("minimum stock cannot exceed maximum stock").
			WithDetail("field", "stockMin")
	}

	return nil
}

// UnitClass returns the measurement class of the purchase unit.
func (i *Ingredient) UnitClass() measure.Class {
	class, _ := measure.ClassOf(i.PurchaseUnit)
	return class
}

// BelowMinStock reports whether stock fell below the configured minimum.
func (i *Ingredient) BelowMinStock() bool {
	return !i.StockMin.IsZero() && i.StockQty.LessThan(i.StockMin)
}
