package costing

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/lossrate"
	"fournil/internal/domain/catalogs/overhead"
	"fournil/internal/domain/catalogs/packaging"
	"fournil/internal/domain/catalogs/salesformat"
)

// PricingInput gathers everything the central formula needs for one format.
type PricingInput struct {
	// RecipeCostPerUnit is the derived cost of one finished unit
	RecipeCostPerUnit types.Money

	// BatchSize is the consuming recipe's units per batch
	BatchSize int

	Packaging *packaging.Packaging

	// Charges are the overhead records this format absorbs
	Charges []*overhead.Charges

	// LossRates are all active loss rates (composition is additive)
	LossRates []*lossrate.LossRate

	// Quantity of finished units in the pack
	Quantity int

	// TargetMarginPct is the desired profit as percentage of price
	TargetMarginPct types.Percent

	// PracticedPrice overrides the recommended price when set
	PracticedPrice *types.Money
}

// PriceFormat computes the full derived pricing of one sales format:
//
//	cost_cookies   = recipe cost per unit x pack quantity
//	cost_packaging = packaging cost per unit x pack quantity
//	cost_overhead  = sum of allocated charges x pack quantity
//	base_cost      = cookies + packaging + overhead
//	cost_losses    = base_cost x total loss percentage
//	total_cost     = base_cost + cost_losses
//	recommended    = total_cost / (1 - target margin / 100)
//	effective      = practiced price if set, else recommended
//	profit         = effective - total_cost
//	realized       = profit / effective x 100 (zero when effective is zero)
//
// The function never mutates its inputs; callers persist the result.
func PriceFormat(in PricingInput) (salesformat.Derived, error) {
	if in.Quantity <= 0 {
		return salesformat.Derived{}, apperror.NewInvalidPackQuantity(in.Quantity)
	}
	// Margin at or above 100% would divide by zero or flip the price sign.
	if in.TargetMarginPct.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return salesformat.Derived{}, apperror.NewInvalidMargin(in.TargetMarginPct.String())
	}

	qty := decimal.NewFromInt(int64(in.Quantity))

	packagingPerUnit, err := CostPackaging(in.Packaging)
	if err != nil {
		return salesformat.Derived{}, err
	}

	var d salesformat.Derived
	d.CostCookies = in.RecipeCostPerUnit.Mul(qty)
	d.CostPackaging = packagingPerUnit.Mul(qty)

	actx := AllocationContext{
		BaseCostPerUnit: in.RecipeCostPerUnit.Add(packagingPerUnit),
		BatchSize:       in.BatchSize,
	}
	overheadPerUnit := decimal.Zero
	for _, charge := range in.Charges {
		alloc, err := AllocateOverhead(charge, actx)
		if err != nil {
			return salesformat.Derived{}, err
		}
		overheadPerUnit = overheadPerUnit.Add(alloc.ChargePerUnit)
	}
	d.CostOverhead = overheadPerUnit.Mul(qty)

	baseCost := d.BaseCost()
	d.CostLosses = LossCost(baseCost, TotalLossPercent(in.LossRates))
	d.TotalCost = baseCost.Add(d.CostLosses)

	d.RecommendedPrice = d.TotalCost.Div(types.Complement(in.TargetMarginPct))

	if in.PracticedPrice != nil {
		d.EffectivePrice = *in.PracticedPrice
	} else {
		d.EffectivePrice = d.RecommendedPrice
	}

	d.UnitProfit = d.EffectivePrice.Sub(d.TotalCost)
	d.RealizedMarginPct = types.RatioPercent(d.UnitProfit, d.EffectivePrice)

	return d, nil
}
