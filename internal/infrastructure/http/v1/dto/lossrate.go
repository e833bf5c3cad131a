package dto

import (
	"github.com/shopspring/decimal"

	"fournil/internal/domain/catalogs/lossrate"
)

// CreateLossRateRequest for creating loss rates.
type CreateLossRateRequest struct {
	Code    string          `json:"code"`
	Name    string          `json:"name" binding:"required"`
	Type    string          `json:"type" binding:"required"`
	Percent decimal.Decimal `json:"percent"`
	Stage   string          `json:"stage" binding:"required"`
}

// ToEntity converts the request into a domain LossRate.
func (r CreateLossRateRequest) ToEntity() *lossrate.LossRate {
	return lossrate.New(r.Code, r.Name,
		lossrate.LossType(r.Type), r.Percent, lossrate.Stage(r.Stage))
}

// UpdateLossRateRequest for updating loss rates.
type UpdateLossRateRequest struct {
	Code    *string          `json:"code"`
	Name    *string          `json:"name"`
	Type    *string          `json:"type"`
	Percent *decimal.Decimal `json:"percent"`
	Stage   *string          `json:"stage"`
	Active  *bool            `json:"active"`
	Version int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields onto an existing LossRate.
func (r UpdateLossRateRequest) ApplyTo(l *lossrate.LossRate) {
	if r.Code != nil {
		l.Code = *r.Code
	}
	if r.Name != nil {
		l.Name = *r.Name
	}
	if r.Type != nil {
		l.Type = lossrate.LossType(*r.Type)
	}
	if r.Percent != nil {
		l.Percent = *r.Percent
	}
	if r.Stage != nil {
		l.Stage = lossrate.Stage(*r.Stage)
	}
	if r.Active != nil {
		l.Active = *r.Active
	}
	l.Version = r.Version
}

// LossRateResponse is the API representation of a loss rate.
type LossRateResponse struct {
	CatalogResponse
	Type    string          `json:"type"`
	Percent decimal.Decimal `json:"percent"`
	Stage   string          `json:"stage"`
	Active  bool            `json:"active"`
}

// FromLossRate creates LossRateResponse from the domain entity.
func FromLossRate(l *lossrate.LossRate) LossRateResponse {
	return LossRateResponse{
		CatalogResponse: FromCatalog(l.Catalog),
		Type:            string(l.Type),
		Percent:         l.Percent,
		Stage:           string(l.Stage),
		Active:          l.Active,
	}
}
