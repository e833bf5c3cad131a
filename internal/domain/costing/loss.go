package costing

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/lossrate"
)

// TotalLossPercent sums the percentages of all active loss rates.
// Rates targeting different stages are additive on the same pre-loss cost
// base; they deliberately do not compound multiplicatively across stages
// (a 10% ingredient loss and a 5% production loss make 15%, not 15.5%).
// This additive composition is a fixed modeling contract.
func TotalLossPercent(rates []*lossrate.LossRate) types.Percent {
	total := decimal.Zero
	for _, rate := range rates {
		if !rate.Active || rate.DeletionMark {
			continue
		}
		total = total.Add(rate.Percent)
	}
	return total
}

// LossCost applies a total loss percentage to a pre-loss cost base.
func LossCost(baseCost types.Money, totalPercent types.Percent) types.Money {
	return baseCost.Mul(types.Fraction(totalPercent))
}
