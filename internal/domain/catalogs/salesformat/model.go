// Package salesformat provides the Sales Format catalog.
// A sales format is a sellable pack of N finished units in specific
// packaging; it is the unit of pricing and profitability analysis.
package salesformat

import (
	"context"

	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/entity"
	"fournil/internal/core/id"
	"fournil/internal/core/types"
)

// State tracks derived-field freshness for the propagation engine.
// A format is never observable in StateStale after a mutating call returns.
type State string

const (
	StateStale       State = "stale"
	StateRecomputing State = "recomputing"
	StateFresh       State = "fresh"
)

// Channel is the sales channel a format is sold through.
type Channel string

const (
	ChannelDirect Channel = "direct"
	ChannelMarket Channel = "market"
	ChannelOnline Channel = "online"
	ChannelResale Channel = "resale"
)

// Breakdown holds the derived cost decomposition of one pack.
type Breakdown struct {
	CostCookies   types.Money `db:"cost_cookies" json:"costCookies"`
	CostPackaging types.Money `db:"cost_packaging" json:"costPackaging"`
	CostOverhead  types.Money `db:"cost_overhead" json:"costOverhead"`
	CostLosses    types.Money `db:"cost_losses" json:"costLosses"`
}

// BaseCost is the pre-loss cost the loss percentage applies to.
func (b Breakdown) BaseCost() types.Money {
	return b.CostCookies.Add(b.CostPackaging).Add(b.CostOverhead)
}

// Derived holds every computed pricing field of a format.
// Written exclusively by the propagation engine.
type Derived struct {
	Breakdown

	TotalCost         types.Money   `db:"total_cost" json:"totalCost"`
	RecommendedPrice  types.Money   `db:"recommended_price" json:"recommendedPrice"`
	EffectivePrice    types.Money   `db:"effective_price" json:"effectivePrice"`
	UnitProfit        types.Money   `db:"unit_profit" json:"unitProfit"`
	RealizedMarginPct types.Percent `db:"realized_margin_pct" json:"realizedMarginPct"`
}

// Format represents a sellable pack.
type Format struct {
	entity.Catalog

	RecipeID    id.ID `db:"recipe_id" json:"recipeId"`
	PackagingID id.ID `db:"packaging_id" json:"packagingId"`

	// Quantity of finished units in the pack
	Quantity int `db:"quantity" json:"quantity"`

	// TargetMarginPct is the desired profit as a percentage of sale price
	TargetMarginPct types.Percent `db:"target_margin_pct" json:"targetMarginPct"`

	// PracticedPrice optionally overrides the recommended price
	PracticedPrice *types.Money `db:"practiced_price" json:"practicedPrice,omitempty"`

	Channel Channel `db:"channel" json:"channel"`

	// ChargeIDs selects the overhead charges this format absorbs
	ChargeIDs []id.ID `db:"-" json:"chargeIds"`

	Derived `json:"derived"`

	// State starts Stale on creation; the engine drives it to Fresh
	// before any reader observes the format.
	State State `db:"state" json:"state"`

	// Incomplete marks a format whose references could not be resolved.
	// An incomplete format keeps its last derived values and is excluded
	// from analytics until the dangling reference is fixed.
	Incomplete bool `db:"incomplete" json:"incomplete"`
}

// New creates a new Format. It starts Stale; the propagation engine
// prices it before the creating call returns.
func New(code, name string, recipeID, packagingID id.ID, quantity int, targetMargin types.Percent) *Format {
	return &Format{
		Catalog:         entity.NewCatalog(code, name),
		RecipeID:        recipeID,
		PackagingID:     packagingID,
		Quantity:        quantity,
		TargetMarginPct: targetMargin,
		Channel:         ChannelDirect,
		State:           StateStale,
	}
}

// Validate implements entity.Validatable interface.
func (f *Format) Validate(ctx context.Context) error {
	if err := f.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(f.RecipeID) {
		return apperror.NewValidation("recipe is required").
			WithDetail("field", "recipeId")
	}
	if id.IsNil(f.PackagingID) {
		return apperror.NewValidation("packaging is required").
			WithDetail("field", "packagingId")
	}

	if f.Quantity <= 0 {
		return apperror.NewInvalidPackQuantity(f.Quantity)
	}

	if f.TargetMarginPct.IsNegative() ||
		f.TargetMarginPct.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return apperror.NewInvalidMargin(f.TargetMarginPct.String())
	}

	if f.PracticedPrice != nil && f.PracticedPrice.IsNegative() {
		return apperror.NewValidation("practiced price cannot be negative").
			WithDetail("field", "practicedPrice")
	}

	switch f.Channel {
	case ChannelDirect, ChannelMarket, ChannelOnline, ChannelResale:
	default:
		return apperror.NewValidation("invalid sales channel").
			WithDetail("field", "channel").
			WithDetail("value", string(f.Channel))
	}

	return nil
}
