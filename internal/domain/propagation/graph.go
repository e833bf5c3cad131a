// Package propagation keeps derived pricing consistent with its inputs.
// Any mutation to an ingredient, purchase, recipe, packaging, charges or
// loss rate drives every transitively dependent sales format from Stale
// through Recomputing to Fresh before the mutating call returns.
package propagation

import (
	"fournil/internal/core/id"
	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/domain/catalogs/lossrate"
	"fournil/internal/domain/catalogs/overhead"
	"fournil/internal/domain/catalogs/packaging"
	"fournil/internal/domain/catalogs/recipe"
	"fournil/internal/domain/catalogs/salesformat"
	"fournil/internal/domain/records/purchase"
)

// EntityKind identifies the mutated entity's collection.
type EntityKind string

const (
	KindIngredient EntityKind = "ingredient"
	KindPurchase   EntityKind = "purchase"
	KindRecipe     EntityKind = "recipe"
	KindPackaging  EntityKind = "packaging"
	KindCharges    EntityKind = "charges"
	KindLossRate   EntityKind = "loss_rate"
	KindFormat     EntityKind = "format"
)

// Graph is the fully materialized entity snapshot the engine recomputes
// over. The engine assumes exclusive access to it for the duration of a
// pass; callers serialize mutations.
type Graph struct {
	Ingredients map[id.ID]*ingredient.Ingredient
	Purchases   map[id.ID][]*purchase.Record // keyed by ingredient id
	Recipes     map[id.ID]*recipe.Recipe
	Packaging   map[id.ID]*packaging.Packaging
	Charges     map[id.ID]*overhead.Charges
	LossRates   map[id.ID]*lossrate.LossRate
	Formats     map[id.ID]*salesformat.Format

	// Reverse-dependency index for targeted fan-out.
	recipesByIngredient map[id.ID][]id.ID
	formatsByRecipe     map[id.ID][]id.ID
	formatsByPackaging  map[id.ID][]id.ID
	formatsByCharge     map[id.ID][]id.ID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Ingredients: make(map[id.ID]*ingredient.Ingredient),
		Purchases:   make(map[id.ID][]*purchase.Record),
		Recipes:     make(map[id.ID]*recipe.Recipe),
		Packaging:   make(map[id.ID]*packaging.Packaging),
		Charges:     make(map[id.ID]*overhead.Charges),
		LossRates:   make(map[id.ID]*lossrate.LossRate),
		Formats:     make(map[id.ID]*salesformat.Format),
	}
}

// Reindex rebuilds the reverse-dependency index. Call after bulk-loading
// the snapshot or after any reference change (recipe lines, format refs).
func (g *Graph) Reindex() {
	g.recipesByIngredient = make(map[id.ID][]id.ID)
	g.formatsByRecipe = make(map[id.ID][]id.ID)
	g.formatsByPackaging = make(map[id.ID][]id.ID)
	g.formatsByCharge = make(map[id.ID][]id.ID)

	for rid, r := range g.Recipes {
		seen := make(map[id.ID]bool, len(r.Lines))
		for _, line := range r.Lines {
			if seen[line.IngredientID] {
				continue
			}
			seen[line.IngredientID] = true
			g.recipesByIngredient[line.IngredientID] =
				append(g.recipesByIngredient[line.IngredientID], rid)
		}
	}

	for fid, f := range g.Formats {
		g.formatsByRecipe[f.RecipeID] = append(g.formatsByRecipe[f.RecipeID], fid)
		g.formatsByPackaging[f.PackagingID] = append(g.formatsByPackaging[f.PackagingID], fid)
		for _, cid := range f.ChargeIDs {
			g.formatsByCharge[cid] = append(g.formatsByCharge[cid], fid)
		}
	}
}

// ActiveLossRates returns all loss rates the pricing formula collects.
func (g *Graph) ActiveLossRates() []*lossrate.LossRate {
	rates := make([]*lossrate.LossRate, 0, len(g.LossRates))
	for _, rate := range g.LossRates {
		if rate.Active && !rate.DeletionMark {
			rates = append(rates, rate)
		}
	}
	return rates
}

// dependentFormats resolves the set of format ids transitively affected by
// a mutation. Formats never depend on other formats, so this is a flat
// fan-out, not a topological sort.
func (g *Graph) dependentFormats(changed id.ID, kind EntityKind) []id.ID {
	switch kind {
	case KindIngredient, KindPurchase:
		var out []id.ID
		seen := make(map[id.ID]bool)
		for _, rid := range g.recipesByIngredient[changed] {
			for _, fid := range g.formatsByRecipe[rid] {
				if !seen[fid] {
					seen[fid] = true
					out = append(out, fid)
				}
			}
		}
		return out

	case KindRecipe:
		return g.formatsByRecipe[changed]

	case KindPackaging:
		return g.formatsByPackaging[changed]

	case KindCharges:
		return g.formatsByCharge[changed]

	case KindLossRate:
		// Loss rates are collected globally, so every format depends
		// on every loss rate.
		out := make([]id.ID, 0, len(g.Formats))
		for fid := range g.Formats {
			out = append(out, fid)
		}
		return out

	case KindFormat:
		if _, ok := g.Formats[changed]; ok {
			return []id.ID{changed}
		}
		return nil

	default:
		return nil
	}
}

// affectedRecipes resolves the recipes whose cost a mutation invalidates.
func (g *Graph) affectedRecipes(changed id.ID, kind EntityKind) []id.ID {
	switch kind {
	case KindIngredient, KindPurchase:
		return g.recipesByIngredient[changed]
	case KindRecipe:
		if _, ok := g.Recipes[changed]; ok {
			return []id.ID{changed}
		}
		return nil
	default:
		return nil
	}
}
