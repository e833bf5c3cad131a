package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"fournil/internal/core/id"
	"fournil/internal/core/measure"
	"fournil/internal/domain/records/purchase"
)

// CreatePurchaseRequest for recording a purchase.
type CreatePurchaseRequest struct {
	IngredientID string          `json:"ingredientId" binding:"required"`
	Supplier     string          `json:"supplier" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Unit         string          `json:"unit" binding:"required"`
	TotalPrice   decimal.Decimal `json:"totalPrice" binding:"required"`
	PurchaseDate time.Time       `json:"purchaseDate" binding:"required"`
	Notes        string          `json:"notes"`
}

// ToEntity converts the request into a domain purchase Record.
func (r CreatePurchaseRequest) ToEntity() *purchase.Record {
	ingredientID, _ := id.Parse(r.IngredientID)
	record := purchase.New(ingredientID, r.Supplier,
		r.Quantity, measure.Unit(r.Unit), r.TotalPrice, r.PurchaseDate)
	record.Notes = r.Notes
	return record
}

// PurchaseResponse is the API representation of a purchase record.
type PurchaseResponse struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingredientId"`
	Supplier     string          `json:"supplier"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// FromPurchase creates PurchaseResponse from the domain entity.
func FromPurchase(r *purchase.Record) PurchaseResponse {
	return PurchaseResponse{
		ID:           r.ID.String(),
		IngredientID: r.IngredientID.String(),
		Supplier:     r.Supplier,
		Quantity:     r.Quantity,
		Unit:         string(r.Unit),
		TotalPrice:   r.TotalPrice,
		UnitPrice:    r.UnitPrice(),
		PurchaseDate: r.PurchaseDate,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
	}
}

// RepricedFormat summarizes one format a mutation repriced.
type RepricedFormat struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	TotalCost        decimal.Decimal `json:"totalCost"`
	RecommendedPrice decimal.Decimal `json:"recommendedPrice"`
	Incomplete       bool            `json:"incomplete"`
}

// CreatePurchaseResponse reports the recorded purchase and every sales
// format the price change cascaded into.
type CreatePurchaseResponse struct {
	Purchase        PurchaseResponse `json:"purchase"`
	RepricedFormats []RepricedFormat `json:"repricedFormats"`
}
