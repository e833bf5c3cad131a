// Package lossrate provides the Loss Rate catalog.
// A loss rate writes off a percentage of cost for waste at one production
// stage; rates on the same stage compose additively on that stage's cost base.
package lossrate

import (
	"context"

	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/entity"
	"fournil/internal/core/types"
)

// LossType names the cause of a loss.
type LossType string

const (
	LossBaking   LossType = "baking"
	LossBreakage LossType = "breakage"
	LossError    LossType = "error"
	LossUnsold   LossType = "unsold"
	LossExpiry   LossType = "expiry"
)

// Stage is the production stage a loss rate applies to.
type Stage string

const (
	StageIngredients Stage = "ingredients"
	StageProduction  Stage = "production"
	StageSales       Stage = "sales"
)

// LossRate represents one configured loss percentage.
type LossRate struct {
	entity.Catalog

	Type LossType `db:"type" json:"type"`

	// Percent is relative to base cost, in [0,100]
	Percent types.Percent `db:"percent" json:"percent"`

	Stage Stage `db:"stage" json:"stage"`

	// Active rates are the only ones the pricing engine collects
	Active bool `db:"active" json:"active"`
}

// New creates a new LossRate.
func New(code, name string, lossType LossType, percent types.Percent, stage Stage) *LossRate {
	return &LossRate{
		Catalog: entity.NewCatalog(code, name),
		Type:    lossType,
		Percent: percent,
		Stage:   stage,
		Active:  true,
	}
}

// Validate implements entity.Validatable interface.
func (l *LossRate) Validate(ctx context.Context) error {
	if err := l.Catalog.Validate(ctx); err != nil {
		return err
	}

	switch l.Type {
	case LossBaking, LossBreakage, LossError, LossUnsold, LossExpiry:
	default:
		return apperror.NewValidation("invalid loss type").
			WithDetail("field", "type").
			WithDetail("value", string(l.Type))
	}

	switch l.Stage {
	case StageIngredients, StageProduction, StageSales:
	default:
		return apperror.NewValidation("invalid loss stage").
			WithDetail("field", "stage").
			WithDetail("value", string(l.Stage))
	}

	if l.Percent.IsNegative() || l.Percent.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.NewValidation("loss percentage must be in [0,100]").
			WithDetail("field", "percent").
			WithDetail("value", l.Percent.String())
	}

	return nil
}
