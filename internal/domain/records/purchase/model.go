// Package purchase provides ingredient purchase records.
// A purchase record is immutable once recorded (deletion excepted); the full
// set of records for an ingredient determines its derived unit price.
package purchase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/entity"
	"fournil/internal/core/id"
	"fournil/internal/core/measure"
	"fournil/internal/core/types"
)

// Record represents one ingredient purchase.
type Record struct {
	entity.BaseRecord

	// IngredientID references the purchased ingredient
	IngredientID id.ID `db:"ingredient_id" json:"ingredientId"`

	// Supplier is the free-form supplier name
	Supplier string `db:"supplier" json:"supplier"`

	// Quantity purchased, in Unit
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`

	// Unit the quantity was recorded in; may differ from the ingredient's
	// purchase unit as long as it is in the same measurement class
	Unit measure.Unit `db:"unit" json:"unit"`

	// TotalPrice is the full amount paid for Quantity
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`

	// PurchaseDate orders records chronologically
	PurchaseDate time.Time `db:"purchase_date" json:"purchaseDate"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

// New creates a new purchase Record.
func New(ingredientID id.ID, supplier string, qty decimal.Decimal, unit measure.Unit, total types.Money, date time.Time) *Record {
	return &Record{
		BaseRecord:   entity.NewBaseRecord(),
		IngredientID: ingredientID,
		Supplier:     supplier,
		Quantity:     qty,
		Unit:         unit,
		TotalPrice:   total,
		PurchaseDate: date,
	}
}

// Validate implements entity.Validatable interface.
func (r *Record) Validate(ctx context.Context) error {
	if id.IsNil(r.IngredientID) {
		return apperror.NewValidation("ingredient is required").
			WithDetail("field", "ingredientId")
	}

	if !r.Quantity.IsPositive() {
		return apperror.NewInvalidQuantity("quantity", r.Quantity.String())
	}

	if !r.Unit.IsValid() {
		return apperror.NewValidation("invalid unit").
			WithDetail("field", "unit").
			WithDetail("value", string(r.Unit))
	}

	if r.TotalPrice.IsNegative() {
		return apperror.NewValidation("total price cannot be negative").
			WithDetail("field", "totalPrice")
	}

	if r.PurchaseDate.IsZero() {
		return apperror.NewValidation("purchase date is required").
			WithDetail("field", "purchaseDate")
	}

	return nil
}

// UnitPrice returns price paid per one Unit of this record.
func (r *Record) UnitPrice() types.Money {
	if r.Quantity.IsZero() {
		return decimal.Zero
	}
	return r.TotalPrice.Div(r.Quantity)
}
