package analytics

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/salesformat"
)

// BreakEven is the sales volume at which contribution covers fixed charges.
type BreakEven struct {
	// FixedCharges is the monthly fixed cost base the computation used.
	FixedCharges types.Money `json:"fixedCharges"`

	// AvgContributionMargin is the mean unit profit across formats.
	AvgContributionMargin types.Money `json:"avgContributionMargin"`

	// UnitsToSell is ceil(fixed / avg contribution).
	UnitsToSell int64 `json:"unitsToSell"`

	// RevenueAtBreakEven is UnitsToSell x the mean effective price.
	RevenueAtBreakEven types.Money `json:"revenueAtBreakEven"`

	// FormatsConsidered is how many formats entered the average.
	FormatsConsidered int `json:"formatsConsidered"`
}

// ComputeBreakEven averages the contribution margin (unit profit) across the
// given formats and derives the number of packs to sell per month to cover
// the fixed charges. A non-positive average means no sales volume can clear
// fixed costs and fails with BREAK_EVEN_UNREACHABLE instead of returning
// infinity. Incomplete and soft-deleted formats are left out of the average.
func ComputeBreakEven(fixedCharges types.Money, formats []*salesformat.Format) (BreakEven, error) {
	if fixedCharges.IsNegative() {
		return BreakEven{}, apperror.NewValidation("fixed charges cannot be negative").
			WithDetail("value", fixedCharges.String())
	}

	totalMargin := decimal.Zero
	totalPrice := decimal.Zero
	n := 0
	for _, f := range formats {
		if f.DeletionMark || f.Incomplete {
			continue
		}
		totalMargin = totalMargin.Add(f.Derived.UnitProfit)
		totalPrice = totalPrice.Add(f.Derived.EffectivePrice)
		n++
	}

	if n == 0 {
		return BreakEven{}, apperror.NewBreakEvenUnreachable("0").
			WithDetail("reason", "no priced formats to average over")
	}

	count := decimal.NewFromInt(int64(n))
	avgMargin := totalMargin.Div(count)
	if !avgMargin.IsPositive() {
		return BreakEven{}, apperror.NewBreakEvenUnreachable(avgMargin.String())
	}

	units := fixedCharges.Div(avgMargin).Ceil().IntPart()
	avgPrice := totalPrice.Div(count)

	return BreakEven{
		FixedCharges:          fixedCharges,
		AvgContributionMargin: avgMargin,
		UnitsToSell:           units,
		RevenueAtBreakEven:    avgPrice.Mul(decimal.NewFromInt(units)),
		FormatsConsidered:     n,
	}, nil
}
