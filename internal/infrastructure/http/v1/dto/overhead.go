package dto

import (
	"github.com/shopspring/decimal"

	"fournil/internal/domain/catalogs/overhead"
)

// ChargeComponentDTO is one named amount of an overhead charges record.
type ChargeComponentDTO struct {
	Kind   string          `json:"kind" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// CreateOverheadRequest for creating overhead charges records.
type CreateOverheadRequest struct {
	Code          string               `json:"code"`
	Name          string               `json:"name" binding:"required"`
	Period        string               `json:"period" binding:"required"`
	Method        string               `json:"method" binding:"required"`
	Components    []ChargeComponentDTO `json:"components"`
	UnitsProduced *decimal.Decimal     `json:"unitsProduced"`
	Percent       *decimal.Decimal     `json:"percent"`
}

// ToEntity converts the request into a domain Charges record.
func (r CreateOverheadRequest) ToEntity() *overhead.Charges {
	c := overhead.New(r.Code, r.Name,
		overhead.Period(r.Period), overhead.AllocationMethod(r.Method))
	for _, comp := range r.Components {
		c.Components = append(c.Components, overhead.Component{
			Kind:   overhead.ComponentKind(comp.Kind),
			Amount: comp.Amount,
		})
	}
	if r.UnitsProduced != nil {
		c.UnitsProduced = *r.UnitsProduced
	}
	if r.Percent != nil {
		c.Percent = *r.Percent
	}
	return c
}

// UpdateOverheadRequest for updating overhead charges records.
type UpdateOverheadRequest struct {
	Code          *string              `json:"code"`
	Name          *string              `json:"name"`
	Period        *string              `json:"period"`
	Method        *string              `json:"method"`
	Components    []ChargeComponentDTO `json:"components"`
	UnitsProduced *decimal.Decimal     `json:"unitsProduced"`
	Percent       *decimal.Decimal     `json:"percent"`
	Version       int                  `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields onto an existing Charges record.
// A non-nil Components slice replaces the whole component set.
func (r UpdateOverheadRequest) ApplyTo(c *overhead.Charges) {
	if r.Code != nil {
		c.Code = *r.Code
	}
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Period != nil {
		c.Period = overhead.Period(*r.Period)
	}
	if r.Method != nil {
		c.Method = overhead.AllocationMethod(*r.Method)
	}
	if r.Components != nil {
		c.Components = c.Components[:0]
		for _, comp := range r.Components {
			c.Components = append(c.Components, overhead.Component{
				Kind:   overhead.ComponentKind(comp.Kind),
				Amount: comp.Amount,
			})
		}
	}
	if r.UnitsProduced != nil {
		c.UnitsProduced = *r.UnitsProduced
	}
	if r.Percent != nil {
		c.Percent = *r.Percent
	}
	c.Version = r.Version
}

// OverheadResponse is the API representation of an overhead charges record.
type OverheadResponse struct {
	CatalogResponse
	Period        string               `json:"period"`
	Method        string               `json:"method"`
	Components    []ChargeComponentDTO `json:"components"`
	TotalCharges  decimal.Decimal      `json:"totalCharges"`
	UnitsProduced decimal.Decimal      `json:"unitsProduced"`
	Percent       decimal.Decimal      `json:"percent"`
}

// FromOverhead creates OverheadResponse from the domain entity.
func FromOverhead(c *overhead.Charges) OverheadResponse {
	components := make([]ChargeComponentDTO, len(c.Components))
	for i, comp := range c.Components {
		components[i] = ChargeComponentDTO{
			Kind:   string(comp.Kind),
			Amount: comp.Amount,
		}
	}

	return OverheadResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		Period:          string(c.Period),
		Method:          string(c.Method),
		Components:      components,
		TotalCharges:    c.TotalCharges(),
		UnitsProduced:   c.UnitsProduced,
		Percent:         c.Percent,
	}
}
