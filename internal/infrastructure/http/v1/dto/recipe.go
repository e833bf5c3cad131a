package dto

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/id"
	"fournil/internal/core/measure"
	"fournil/internal/domain/catalogs/recipe"
)

// RecipeLineDTO is one ingredient line of a recipe.
type RecipeLineDTO struct {
	IngredientID string          `json:"ingredientId" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Unit         string          `json:"unit" binding:"required"`
}

func (l RecipeLineDTO) toLine() recipe.Line {
	// A malformed id becomes the nil id; Validate rejects it with a
	// proper error instead of a bind failure.
	ingredientID, _ := id.Parse(l.IngredientID)
	return recipe.Line{
		IngredientID: ingredientID,
		Quantity:     l.Quantity,
		Unit:         measure.Unit(l.Unit),
	}
}

// CreateRecipeRequest for creating recipes.
type CreateRecipeRequest struct {
	Code           string           `json:"code"`
	Name           string           `json:"name" binding:"required"`
	Level          string           `json:"level" binding:"required"`
	UnitsPerBatch  int              `json:"unitsPerBatch" binding:"required"`
	Lines          []RecipeLineDTO  `json:"lines"`
	OvenEnergyCost *decimal.Decimal `json:"ovenEnergyCost"`
}

// ToEntity converts the request into a domain Recipe.
func (r CreateRecipeRequest) ToEntity() *recipe.Recipe {
	rec := recipe.New(r.Code, r.Name, recipe.Level(r.Level), r.UnitsPerBatch)
	for _, line := range r.Lines {
		rec.Lines = append(rec.Lines, line.toLine())
	}
	if r.OvenEnergyCost != nil {
		rec.OvenEnergyCost = *r.OvenEnergyCost
	}
	return rec
}

// UpdateRecipeRequest for updating recipes.
type UpdateRecipeRequest struct {
	Code           *string          `json:"code"`
	Name           *string          `json:"name"`
	Level          *string          `json:"level"`
	UnitsPerBatch  *int             `json:"unitsPerBatch"`
	Lines          []RecipeLineDTO  `json:"lines"`
	OvenEnergyCost *decimal.Decimal `json:"ovenEnergyCost"`
	Version        int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields onto an existing Recipe.
// A non-nil Lines slice replaces the whole line set.
func (r UpdateRecipeRequest) ApplyTo(rec *recipe.Recipe) {
	if r.Code != nil {
		rec.Code = *r.Code
	}
	if r.Name != nil {
		rec.Name = *r.Name
	}
	if r.Level != nil {
		rec.Level = recipe.Level(*r.Level)
	}
	if r.UnitsPerBatch != nil {
		rec.UnitsPerBatch = *r.UnitsPerBatch
	}
	if r.Lines != nil {
		rec.Lines = rec.Lines[:0]
		for _, line := range r.Lines {
			rec.Lines = append(rec.Lines, line.toLine())
		}
	}
	if r.OvenEnergyCost != nil {
		rec.OvenEnergyCost = *r.OvenEnergyCost
	}
	rec.Version = r.Version
}

// RecipeLineResponse is the API representation of a recipe line.
type RecipeLineResponse struct {
	IngredientID string          `json:"ingredientId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// RecipeResponse is the API representation of a recipe.
type RecipeResponse struct {
	CatalogResponse
	Level               string               `json:"level"`
	UnitsPerBatch       int                  `json:"unitsPerBatch"`
	Lines               []RecipeLineResponse `json:"lines"`
	OvenEnergyCost      decimal.Decimal      `json:"ovenEnergyCost"`
	TotalIngredientCost decimal.Decimal      `json:"totalIngredientCost"`
	CostPerUnit         decimal.Decimal      `json:"costPerUnit"`
	Incomplete          bool                 `json:"incomplete"`
}

// FromRecipe creates RecipeResponse from the domain entity.
func FromRecipe(rec *recipe.Recipe) RecipeResponse {
	lines := make([]RecipeLineResponse, len(rec.Lines))
	for i, line := range rec.Lines {
		lines[i] = RecipeLineResponse{
			IngredientID: line.IngredientID.String(),
			Quantity:     line.Quantity,
			Unit:         string(line.Unit),
		}
	}

	return RecipeResponse{
		CatalogResponse:     FromCatalog(rec.Catalog),
		Level:               string(rec.Level),
		UnitsPerBatch:       rec.UnitsPerBatch,
		Lines:               lines,
		OvenEnergyCost:      rec.OvenEnergyCost,
		TotalIngredientCost: rec.TotalIngredientCost,
		CostPerUnit:         rec.CostPerUnit,
		Incomplete:          rec.Incomplete,
	}
}
