package dto

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/measure"
	"fournil/internal/domain/catalogs/ingredient"
)

// CreateIngredientRequest for creating ingredients.
type CreateIngredientRequest struct {
	Code         string           `json:"code"`
	Name         string           `json:"name" binding:"required"`
	Category     string           `json:"category" binding:"required"`
	PurchaseUnit string           `json:"purchaseUnit" binding:"required"`
	StockQty     *decimal.Decimal `json:"stockQty"`
	StockMin     *decimal.Decimal `json:"stockMin"`
	StockMax     *decimal.Decimal `json:"stockMax"`
}

// ToEntity converts the request into a domain Ingredient.
func (r CreateIngredientRequest) ToEntity() *ingredient.Ingredient {
	ing := ingredient.New(r.Code, r.Name,
		ingredient.Category(r.Category), measure.Unit(r.PurchaseUnit))
	if r.StockQty != nil {
		ing.StockQty = *r.StockQty
	}
	if r.StockMin != nil {
		ing.StockMin = *r.StockMin
	}
	if r.StockMax != nil {
		ing.StockMax = *r.StockMax
	}
	return ing
}

// UpdateIngredientRequest for updating ingredients.
type UpdateIngredientRequest struct {
	Code         *string          `json:"code"`
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	PurchaseUnit *string          `json:"purchaseUnit"`
	Active       *bool            `json:"active"`
	StockQty     *decimal.Decimal `json:"stockQty"`
	StockMin     *decimal.Decimal `json:"stockMin"`
	StockMax     *decimal.Decimal `json:"stockMax"`
	Version      int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields onto an existing Ingredient.
func (r UpdateIngredientRequest) ApplyTo(ing *ingredient.Ingredient) {
	if r.Code != nil {
		ing.Code = *r.Code
	}
	if r.Name != nil {
		ing.Name = *r.Name
	}
	if r.Category != nil {
		ing.Category = ingredient.Category(*r.Category)
	}
	if r.PurchaseUnit != nil {
		ing.PurchaseUnit = measure.Unit(*r.PurchaseUnit)
	}
	if r.Active != nil {
		ing.Active = *r.Active
	}
	if r.StockQty != nil {
		ing.StockQty = *r.StockQty
	}
	if r.StockMin != nil {
		ing.StockMin = *r.StockMin
	}
	if r.StockMax != nil {
		ing.StockMax = *r.StockMax
	}
	ing.Version = r.Version
}

// IngredientResponse is the API representation of an ingredient.
type IngredientResponse struct {
	CatalogResponse
	Category       string          `json:"category"`
	PurchaseUnit   string          `json:"purchaseUnit"`
	Active         bool            `json:"active"`
	StockQty       decimal.Decimal `json:"stockQty"`
	StockMin       decimal.Decimal `json:"stockMin"`
	StockMax       decimal.Decimal `json:"stockMax"`
	BelowMinStock  bool            `json:"belowMinStock"`
	PricePerUnit   decimal.Decimal `json:"pricePerUnit"`
	PricePerGram   decimal.Decimal `json:"pricePerGram"`
	NoPurchaseData bool            `json:"noPurchaseData"`
}

// FromIngredient creates IngredientResponse from the domain entity.
func FromIngredient(ing *ingredient.Ingredient) IngredientResponse {
	return IngredientResponse{
		CatalogResponse: FromCatalog(ing.Catalog),
		Category:        string(ing.Category),
		PurchaseUnit:    string(ing.PurchaseUnit),
		Active:          ing.Active,
		StockQty:        ing.StockQty,
		StockMin:        ing.StockMin,
		StockMax:        ing.StockMax,
		BelowMinStock:   ing.BelowMinStock(),
		PricePerUnit:    ing.PricePerUnit,
		PricePerGram:    ing.PricePerGram,
		NoPurchaseData:  ing.NoPurchaseData,
	}
}
