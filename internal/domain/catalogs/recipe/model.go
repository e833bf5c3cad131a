// Package recipe provides the Recipe catalog.
// A recipe turns ingredient quantities into a fixed number of finished units
// per batch; its costs are derived from the current ingredient price table.
package recipe

import (
	"context"

	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/entity"
	"fournil/internal/core/id"
	"fournil/internal/core/measure"
	"fournil/internal/core/types"
)

// Level positions a recipe in the product range.
type Level string

const (
	LevelStandard Level = "standard"
	LevelPremium  Level = "premium"
	LevelLuxury   Level = "luxury"
)

// Line references one ingredient and the quantity a batch requires.
// Its cost is computed from the ingredient price table, never stored.
type Line struct {
	IngredientID id.ID           `db:"ingredient_id" json:"ingredientId"`
	Quantity     decimal.Decimal `db:"quantity" json:"quantity"`
	Unit         measure.Unit    `db:"unit" json:"unit"`
}

// Recipe represents a production formula.
type Recipe struct {
	entity.Catalog

	Level Level `db:"level" json:"level"`

	// UnitsPerBatch is the number of finished units one batch produces
	UnitsPerBatch int `db:"units_per_batch" json:"unitsPerBatch"`

	// Lines is the ordered ingredient list
	Lines []Line `db:"-" json:"lines"`

	// OvenEnergyCost is the fixed energy cost of baking one batch
	OvenEnergyCost types.Money `db:"oven_energy_cost" json:"ovenEnergyCost"`

	// Derived by the costing engine; never set by an operator.
	TotalIngredientCost types.Money `db:"total_ingredient_cost" json:"totalIngredientCost"`
	CostPerUnit         types.Money `db:"cost_per_unit" json:"costPerUnit"`

	// Incomplete marks a recipe whose cost could not be fully derived
	// (a line references a missing ingredient).
	Incomplete bool `db:"incomplete" json:"incomplete"`
}

// New creates a new Recipe with required fields.
func New(code, name string, level Level, unitsPerBatch int) *Recipe {
	return &Recipe{
		Catalog:       entity.NewCatalog(code, name),
		Level:         level,
		UnitsPerBatch: unitsPerBatch,
	}
}

// Validate implements entity.Validatable interface.
func (r *Recipe) Validate(ctx context.Context) error {
	if err := r.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidLevel(r.Level) {
		return apperror.NewValidation("invalid recipe level").
			WithDetail("field", "level").
			WithDetail("value", string(r.Level))
	}

	// A recipe producing no units is not costable.
	if r.UnitsPerBatch <= 0 {
		return apperror.NewValidation("units per batch must be positive").
			WithDetail("field", "unitsPerBatch").
			WithDetail("value", r.UnitsPerBatch)
	}

	if r.OvenEnergyCost.IsNegative() {
		return apperror.NewValidation("oven energy cost cannot be negative").
			WithDetail("field", "ovenEnergyCost")
	}

	for i, line := range r.Lines {
		if id.IsNil(line.IngredientID) {
			return apperror.NewValidation("recipe line ingredient is required").
				WithDetail("line", i)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewInvalidQuantity("lines.quantity", line.Quantity.String()).
				WithDetail("line", i)
		}
		if !line.Unit.IsValid() {
			return apperror.NewValidation("invalid recipe line unit").
				WithDetail("line", i).
				WithDetail("value", string(line.Unit))
		}
	}

	return nil
}

func isValidLevel(l Level) bool {
	switch l {
	case LevelStandard, LevelPremium, LevelLuxury:
		return true
	}
	return false
}
