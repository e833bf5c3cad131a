package costing

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/packaging"
)

// CostPackaging computes the packaging cost of one produced unit:
// (unit cost + extras) / capacity.
func CostPackaging(p *packaging.Packaging) (types.Money, error) {
	if p.Capacity < 1 {
		return decimal.Zero, apperror.NewInvalidCapacity(p.Capacity)
	}
	return p.UnitCost.Add(p.ExtrasCost).Div(decimal.NewFromInt(int64(p.Capacity))), nil
}
