package costing

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/overhead"
)

// AllocationContext carries the consuming format's figures the allocator
// needs. Two of the three methods depend on it, so overhead can only be
// allocated at format-pricing time.
type AllocationContext struct {
	// BaseCostPerUnit is the pre-overhead cost of one produced unit
	// (recipe cost + packaging cost), the base for percentage-of-cost.
	BaseCostPerUnit types.Money

	// BatchSize of the consuming recipe, the divisor for per-batch.
	BatchSize int
}

// Allocation is the outcome of spreading one charges record.
type Allocation struct {
	// ChargePerUnit is the overhead absorbed by one produced unit
	ChargePerUnit types.Money

	// Flagged marks a zero denominator: the charge is zero by contract
	// instead of propagating a division by zero downstream.
	Flagged bool
}

// AllocateOverhead spreads a charges record over produced units using the
// record's allocation method. The method set is closed; the switch is the
// single dispatch point for every formula branch.
func AllocateOverhead(c *overhead.Charges, actx AllocationContext) (Allocation, error) {
	total := c.TotalCharges()

	switch c.Method {
	case overhead.AllocPerUnit:
		if !c.UnitsProduced.IsPositive() {
			return Allocation{Flagged: true}, nil
		}
		return Allocation{ChargePerUnit: total.Div(c.UnitsProduced)}, nil

	case overhead.AllocPercentOfCost:
		return Allocation{
			ChargePerUnit: actx.BaseCostPerUnit.Mul(types.Fraction(c.Percent)),
		}, nil

	case overhead.AllocPerBatch:
		if actx.BatchSize <= 0 {
			return Allocation{Flagged: true}, nil
		}
		return Allocation{
			ChargePerUnit: total.Div(decimal.NewFromInt(int64(actx.BatchSize))),
		}, nil

	default:
		return Allocation{}, apperror.NewValidation("invalid allocation method").
			WithDetail("method", string(c.Method))
	}
}
