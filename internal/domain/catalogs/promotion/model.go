// Package promotion provides the Promotion catalog.
// Promotions modify the effective price at the presentation layer; the cost
// cascade ignores them, analytics consume them when active.
package promotion

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/entity"
	"fournil/internal/core/id"
	"fournil/internal/core/types"
)

// DiscountType is a closed set of discount mechanics.
type DiscountType string

const (
	// DiscountPercent reduces the price by Value percent.
	DiscountPercent DiscountType = "percentage"

	// DiscountFixed reduces the price by a fixed Value amount.
	DiscountFixed DiscountType = "fixed_amount"

	// DiscountVolume reduces the price by Value percent once the bought
	// quantity reaches Threshold.
	DiscountVolume DiscountType = "volume_threshold"
)

// Promotion represents one configured discount.
type Promotion struct {
	entity.Catalog

	FormatID id.ID `db:"format_id" json:"formatId"`

	Type  DiscountType    `db:"type" json:"type"`
	Value decimal.Decimal `db:"value" json:"value"`

	// Threshold is the minimum quantity for DiscountVolume
	Threshold int `db:"threshold" json:"threshold"`

	ValidFrom time.Time `db:"valid_from" json:"validFrom"`
	ValidTo   time.Time `db:"valid_to" json:"validTo"`

	Active bool `db:"active" json:"active"`
}

// New creates a new active Promotion for a sales format.
func New(code, name string, formatID id.ID, discountType DiscountType, value decimal.Decimal) *Promotion {
	return &Promotion{
		Catalog:  entity.NewCatalog(code, name),
		FormatID: formatID,
		Type:     discountType,
		Value:    value,
		Active:   true,
	}
}

// Validate implements entity.Validatable interface.
func (p *Promotion) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.FormatID) {
		return apperror.NewValidation("sales format is required").
			WithDetail("field", "formatId")
	}

	switch p.Type {
	case DiscountPercent, DiscountVolume:
		if p.Value.IsNegative() || p.Value.GreaterThan(decimal.NewFromInt(100)) {
			return apperror.NewValidation("discount percentage must be in [0,100]").
				WithDetail("field", "value").
				WithDetail("value", p.Value.String())
		}
	case DiscountFixed:
		if p.Value.IsNegative() {
			return apperror.NewValidation("discount amount cannot be negative").
				WithDetail("field", "value")
		}
	default:
		return apperror.NewValidation("invalid discount type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}

	if p.Type == DiscountVolume && p.Threshold < 1 {
		return apperror.NewValidation("volume threshold must be at least 1").
			WithDetail("field", "threshold")
	}

	if !p.ValidTo.IsZero() && p.ValidTo.Before(p.ValidFrom) {
		return apperror.NewValidation("validity window end precedes start").
			WithDetail("field", "validTo")
	}

	return nil
}

// InWindow reports whether the promotion is active at the given time.
func (p *Promotion) InWindow(at time.Time) bool {
	if !p.Active {
		return false
	}
	if !p.ValidFrom.IsZero() && at.Before(p.ValidFrom) {
		return false
	}
	if !p.ValidTo.IsZero() && at.After(p.ValidTo) {
		return false
	}
	return true
}

// Apply returns the discounted price for the given quantity.
// Prices never go below zero.
func (p *Promotion) Apply(price types.Money, quantity int) types.Money {
	var discounted types.Money
	switch p.Type {
	case DiscountPercent:
		discounted = price.Mul(types.Complement(p.Value))
	case DiscountFixed:
		discounted = price.Sub(p.Value)
	case DiscountVolume:
		if quantity < p.Threshold {
			return price
		}
		discounted = price.Mul(types.Complement(p.Value))
	default:
		return price
	}
	if discounted.IsNegative() {
		return decimal.Zero
	}
	return discounted
}
