package analytics

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/salesformat"
)

// DefaultElasticity is the price elasticity of demand assumed when the
// caller does not supply one. Artisanal baked goods sit in the elastic
// range: a 10% price increase loses about 15% of volume.
var DefaultElasticity = decimal.RequireFromString("-1.5")

// defaultBaseVolume normalizes scenarios to packs sold per period when the
// caller has no sales history to anchor on.
const defaultBaseVolume = 100

// Scenario is one simulated price point.
type Scenario struct {
	// PriceDeltaPct is the simulated change from the effective price.
	PriceDeltaPct types.Percent `json:"priceDeltaPct"`

	Price types.Money `json:"price"`

	// VolumeMultiplier is 1 + elasticity x delta/100, floored at 0.
	VolumeMultiplier decimal.Decimal `json:"volumeMultiplier"`

	Volume  decimal.Decimal `json:"volume"`
	Revenue types.Money     `json:"revenue"`
	Profit  types.Money     `json:"profit"`

	// Recommended flags the profit-maximizing scenario.
	Recommended bool `json:"recommended"`
}

// SensitivityInput parameterizes one simulation run.
type SensitivityInput struct {
	Format *salesformat.Format

	// DeltasPct are the price changes to simulate, e.g. -10, -5, 0, 5, 10.
	DeltasPct []types.Percent

	// Elasticity defaults to DefaultElasticity when nil.
	Elasticity *decimal.Decimal

	// BaseVolume is the packs sold at the current price; defaults to 100.
	BaseVolume *decimal.Decimal
}

// SimulatePriceSensitivity estimates volume, revenue and profit across the
// given price deltas using a constant-elasticity demand response. The
// volume multiplier is floored at zero so steep price increases model a
// dead market instead of negative sales. The profit-maximizing scenario is
// flagged as the recommendation.
func SimulatePriceSensitivity(in SensitivityInput) ([]Scenario, error) {
	if in.Format == nil {
		return nil, apperror.NewValidation("format is required")
	}
	if len(in.DeltasPct) == 0 {
		return nil, apperror.NewValidation("at least one price delta is required")
	}

	elasticity := DefaultElasticity
	if in.Elasticity != nil {
		elasticity = *in.Elasticity
	}
	baseVolume := decimal.NewFromInt(defaultBaseVolume)
	if in.BaseVolume != nil {
		if !in.BaseVolume.IsPositive() {
			return nil, apperror.NewValidation("base volume must be positive").
				WithDetail("value", in.BaseVolume.String())
		}
		baseVolume = *in.BaseVolume
	}

	basePrice := in.Format.Derived.EffectivePrice
	unitCost := in.Format.Derived.TotalCost
	hundred := decimal.NewFromInt(100)
	one := decimal.NewFromInt(1)

	out := make([]Scenario, 0, len(in.DeltasPct))
	best := -1
	for _, delta := range in.DeltasPct {
		mult := one.Add(elasticity.Mul(delta).Div(hundred))
		if mult.IsNegative() {
			mult = decimal.Zero
		}

		price := basePrice.Mul(one.Add(delta.Div(hundred)))
		volume := baseVolume.Mul(mult)

		s := Scenario{
			PriceDeltaPct:    delta,
			Price:            price,
			VolumeMultiplier: mult,
			Volume:           volume,
			Revenue:          price.Mul(volume),
			Profit:           price.Sub(unitCost).Mul(volume),
		}
		out = append(out, s)

		if best < 0 || s.Profit.GreaterThan(out[best].Profit) {
			best = len(out) - 1
		}
	}
	out[best].Recommended = true
	return out, nil
}
