// Package packaging provides the Packaging catalog.
package packaging

import (
	"context"

	"fournil/internal/core/apperror"
	"fournil/internal/core/entity"
	"fournil/internal/core/types"
)

// Type classifies packaging.
type Type string

const (
	TypeBag    Type = "bag"
	TypeBox    Type = "box"
	TypeJar    Type = "jar"
	TypeSachet Type = "sachet"
	TypeOther  Type = "other"
)

// Packaging represents a container holding a fixed number of finished units.
type Packaging struct {
	entity.Catalog

	Type Type `db:"type" json:"type"`

	// Capacity is the number of finished units the packaging holds
	Capacity int `db:"capacity" json:"capacity"`

	// UnitCost is the purchase cost of one empty packaging
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	// Extras cover optional ribbon, label or insert costs
	ExtrasCost types.Money `db:"extras_cost" json:"extrasCost"`
	ExtrasNote string      `db:"extras_note" json:"extrasNote,omitempty"`

	// CostPerUnit is derived: (UnitCost + ExtrasCost) / Capacity.
	CostPerUnit types.Money `db:"cost_per_unit" json:"costPerUnit"`
}

// New creates a new Packaging with required fields.
func New(code, name string, pkgType Type, capacity int, unitCost types.Money) *Packaging {
	return &Packaging{
		Catalog:  entity.NewCatalog(code, name),
		Type:     pkgType,
		Capacity: capacity,
		UnitCost: unitCost,
	}
}

// Validate implements entity.Validatable interface.
func (p *Packaging) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidType(p.Type) {
		return apperror.NewValidation("invalid packaging type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}

	if p.Capacity < 1 {
		return apperror.NewInvalidCapacity(p.Capacity)
	}

	if p.UnitCost.IsNegative() || p.ExtrasCost.IsNegative() {
		return apperror.NewValidation("packaging costs cannot be negative").
			WithDetail("field", "unitCost")
	}

	return nil
}

func isValidType(t Type) bool {
	switch t {
	case TypeBag, TypeBox, TypeJar, TypeSachet, TypeOther:
		return true
	}
	return false
}
