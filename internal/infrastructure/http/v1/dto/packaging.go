package dto

import (
	"github.com/shopspring/decimal"

	"fournil/internal/domain/catalogs/packaging"
)

// CreatePackagingRequest for creating packaging entries.
type CreatePackagingRequest struct {
	Code       string           `json:"code"`
	Name       string           `json:"name" binding:"required"`
	Type       string           `json:"type" binding:"required"`
	Capacity   int              `json:"capacity" binding:"required"`
	UnitCost   decimal.Decimal  `json:"unitCost"`
	ExtrasCost *decimal.Decimal `json:"extrasCost"`
	ExtrasNote string           `json:"extrasNote"`
}

// ToEntity converts the request into a domain Packaging.
func (r CreatePackagingRequest) ToEntity() *packaging.Packaging {
	p := packaging.New(r.Code, r.Name, packaging.Type(r.Type), r.Capacity, r.UnitCost)
	if r.ExtrasCost != nil {
		p.ExtrasCost = *r.ExtrasCost
	}
	p.ExtrasNote = r.ExtrasNote
	return p
}

// UpdatePackagingRequest for updating packaging entries.
type UpdatePackagingRequest struct {
	Code       *string          `json:"code"`
	Name       *string          `json:"name"`
	Type       *string          `json:"type"`
	Capacity   *int             `json:"capacity"`
	UnitCost   *decimal.Decimal `json:"unitCost"`
	ExtrasCost *decimal.Decimal `json:"extrasCost"`
	ExtrasNote *string          `json:"extrasNote"`
	Version    int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields onto an existing Packaging.
func (r UpdatePackagingRequest) ApplyTo(p *packaging.Packaging) {
	if r.Code != nil {
		p.Code = *r.Code
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Type != nil {
		p.Type = packaging.Type(*r.Type)
	}
	if r.Capacity != nil {
		p.Capacity = *r.Capacity
	}
	if r.UnitCost != nil {
		p.UnitCost = *r.UnitCost
	}
	if r.ExtrasCost != nil {
		p.ExtrasCost = *r.ExtrasCost
	}
	if r.ExtrasNote != nil {
		p.ExtrasNote = *r.ExtrasNote
	}
	p.Version = r.Version
}

// PackagingResponse is the API representation of a packaging entry.
type PackagingResponse struct {
	CatalogResponse
	Type        string          `json:"type"`
	Capacity    int             `json:"capacity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	ExtrasCost  decimal.Decimal `json:"extrasCost"`
	ExtrasNote  string          `json:"extrasNote,omitempty"`
	CostPerUnit decimal.Decimal `json:"costPerUnit"`
}

// FromPackaging creates PackagingResponse from the domain entity.
func FromPackaging(p *packaging.Packaging) PackagingResponse {
	return PackagingResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		Type:            string(p.Type),
		Capacity:        p.Capacity,
		UnitCost:        p.UnitCost,
		ExtrasCost:      p.ExtrasCost,
		ExtrasNote:      p.ExtrasNote,
		CostPerUnit:     p.CostPerUnit,
	}
}
