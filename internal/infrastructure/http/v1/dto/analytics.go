package dto

import (
	"github.com/shopspring/decimal"
)

// SensitivityRequest drives the price-sensitivity simulation of one format.
type SensitivityRequest struct {
	FormatID string `json:"formatId" binding:"required"`

	// DeltasPct are the price changes to simulate; defaults to
	// -10, -5, 0, +5, +10 when empty.
	DeltasPct []decimal.Decimal `json:"deltasPct"`

	Elasticity *decimal.Decimal `json:"elasticity"`
	BaseVolume *decimal.Decimal `json:"baseVolume"`
}
