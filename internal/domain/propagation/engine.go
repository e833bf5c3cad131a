package propagation

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fournil/internal/core/id"
	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/domain/catalogs/overhead"
	"fournil/internal/domain/catalogs/recipe"
	"fournil/internal/domain/catalogs/salesformat"
	"fournil/internal/domain/costing"
	"fournil/pkg/logger"
)

// Changeset lists every entity whose derived fields a pass rewrote.
// The caller owns persisting it; the engine never touches storage.
type Changeset struct {
	Ingredients []*ingredient.Ingredient
	Recipes     []*recipe.Recipe
	Formats     []*salesformat.Format
}

// Empty reports whether the pass changed nothing.
func (c *Changeset) Empty() bool {
	return len(c.Ingredients) == 0 && len(c.Recipes) == 0 && len(c.Formats) == 0
}

// Engine drives the cost cascade over a Graph snapshot. It is not safe for
// concurrent use; mutating callers hold a single write lock around the
// mutation plus its Recompute pass.
type Engine struct {
	graph  *Graph
	tracer trace.Tracer
}

// NewEngine creates an engine over a graph. The graph must be indexed.
func NewEngine(g *Graph) *Engine {
	return &Engine{
		graph:  g,
		tracer: otel.Tracer("fournil.propagation"),
	}
}

// Graph exposes the underlying snapshot for readers.
func (e *Engine) Graph() *Graph {
	return e.graph
}

// Recompute propagates one mutation through the dependency chain: it
// re-resolves the affected ingredient price, re-costs the affected recipes,
// then drives every dependent sales format Stale -> Recomputing -> Fresh.
// The returned changeset holds everything the caller must persist.
func (e *Engine) Recompute(ctx context.Context, changed id.ID, kind EntityKind) (*Changeset, error) {
	ctx, span := e.tracer.Start(ctx, "propagation.Recompute",
		trace.WithAttributes(
			attribute.String("entity.id", changed.String()),
			attribute.String("entity.kind", string(kind)),
		))
	defer span.End()

	cs := &Changeset{}

	if kind == KindIngredient || kind == KindPurchase {
		if err := e.repriceIngredient(ctx, changed); err != nil {
			return nil, err
		}
		if ing, ok := e.graph.Ingredients[changed]; ok {
			cs.Ingredients = append(cs.Ingredients, ing)
		}
	}

	for _, rid := range e.graph.affectedRecipes(changed, kind) {
		if err := e.recostRecipe(ctx, rid); err != nil {
			return nil, err
		}
		if r, ok := e.graph.Recipes[rid]; ok {
			cs.Recipes = append(cs.Recipes, r)
		}
	}

	fids := e.graph.dependentFormats(changed, kind)
	span.SetAttributes(attribute.Int("formats.affected", len(fids)))

	// Mark the whole fan-out stale before repricing any of it, so a
	// failure mid-pass leaves no format falsely Fresh.
	for _, fid := range fids {
		f, ok := e.graph.Formats[fid]
		if !ok || f.DeletionMark {
			continue
		}
		f.State = salesformat.StateStale
		cs.Formats = append(cs.Formats, f)
	}

	for _, f := range cs.Formats {
		if err := e.repriceFormat(ctx, f); err != nil {
			return nil, err
		}
	}

	sort.Slice(cs.Formats, func(i, j int) bool { return cs.Formats[i].Code < cs.Formats[j].Code })

	logger.Debug(ctx, "propagation pass complete",
		"changed_id", changed.String(),
		"kind", string(kind),
		"formats", len(cs.Formats))

	return cs, nil
}

// RecomputeAll re-derives every value in the graph from scratch: ingredient
// prices, recipe costs, then every format. Used at startup and after bulk
// imports.
func (e *Engine) RecomputeAll(ctx context.Context) (*Changeset, error) {
	ctx, span := e.tracer.Start(ctx, "propagation.RecomputeAll")
	defer span.End()

	cs := &Changeset{}

	for ingID, ing := range e.graph.Ingredients {
		if err := e.repriceIngredient(ctx, ingID); err != nil {
			return nil, err
		}
		cs.Ingredients = append(cs.Ingredients, ing)
	}
	for rid, r := range e.graph.Recipes {
		if err := e.recostRecipe(ctx, rid); err != nil {
			return nil, err
		}
		cs.Recipes = append(cs.Recipes, r)
	}

	for _, f := range e.graph.Formats {
		if f.DeletionMark {
			continue
		}
		f.State = salesformat.StateStale
		if err := e.repriceFormat(ctx, f); err != nil {
			return nil, err
		}
		cs.Formats = append(cs.Formats, f)
	}

	sort.Slice(cs.Formats, func(i, j int) bool { return cs.Formats[i].Code < cs.Formats[j].Code })
	return cs, nil
}

func (e *Engine) repriceIngredient(ctx context.Context, ingID id.ID) error {
	ing, ok := e.graph.Ingredients[ingID]
	if !ok {
		// Deleted ingredient: dependents go Incomplete via the price table.
		return nil
	}

	cost, err := costing.ResolveUnitCost(ing, e.graph.Purchases[ingID])
	if err != nil {
		return err
	}
	costing.ApplyUnitCost(ing, cost)

	if cost.NoPurchaseData {
		logger.Debug(ctx, "ingredient has no purchase history, cost is zero",
			"ingredient", ing.Code)
	}
	return nil
}

func (e *Engine) recostRecipe(ctx context.Context, rid id.ID) error {
	r, ok := e.graph.Recipes[rid]
	if !ok {
		return nil
	}

	cost, err := costing.CostRecipe(r, e.priceTable())
	if err != nil {
		return err
	}
	costing.ApplyRecipeCost(r, cost)

	if cost.Incomplete {
		logger.Warn(ctx, "recipe cost is incomplete",
			"recipe", r.Code,
			"missing_ingredients", len(cost.MissingIngredients))
	}
	return nil
}

// priceTable projects the current ingredient prices for the recipe coster.
// Soft-deleted ingredients are left out, so recipes still referencing them
// come out Incomplete.
func (e *Engine) priceTable() costing.PriceTable {
	table := make(costing.PriceTable, len(e.graph.Ingredients))
	for ingID, ing := range e.graph.Ingredients {
		if ing.DeletionMark {
			continue
		}
		table[ingID] = costing.IngredientPrice{
			PricePerUnit: ing.PricePerUnit,
			Unit:         ing.PurchaseUnit,
		}
	}
	return table
}

// repriceFormat runs the pricing formula for one stale format. A dangling
// recipe or packaging reference marks the format Incomplete and leaves its
// last derived values in place; any other failure aborts the pass.
func (e *Engine) repriceFormat(ctx context.Context, f *salesformat.Format) error {
	f.State = salesformat.StateRecomputing

	r, haveRecipe := e.graph.Recipes[f.RecipeID]
	pkg, havePackaging := e.graph.Packaging[f.PackagingID]
	if haveRecipe && r.DeletionMark {
		haveRecipe = false
	}
	if havePackaging && pkg.DeletionMark {
		havePackaging = false
	}

	if !haveRecipe || !havePackaging {
		f.Incomplete = true
		f.State = salesformat.StateFresh
		logger.Warn(ctx, "format has a dangling reference, keeping last derived values",
			"format", f.Code,
			"recipe_resolved", haveRecipe,
			"packaging_resolved", havePackaging)
		return nil
	}

	incomplete := r.Incomplete

	charges := make([]*overhead.Charges, 0, len(f.ChargeIDs))
	for _, cid := range f.ChargeIDs {
		c, ok := e.graph.Charges[cid]
		if !ok || c.DeletionMark {
			incomplete = true
			continue
		}
		charges = append(charges, c)
	}

	d, err := costing.PriceFormat(costing.PricingInput{
		RecipeCostPerUnit: r.CostPerUnit,
		BatchSize:         r.UnitsPerBatch,
		Packaging:         pkg,
		Charges:           charges,
		LossRates:         e.graph.ActiveLossRates(),
		Quantity:          f.Quantity,
		TargetMarginPct:   f.TargetMarginPct,
		PracticedPrice:    f.PracticedPrice,
	})
	if err != nil {
		return err
	}

	f.Derived = d
	f.Incomplete = incomplete
	f.State = salesformat.StateFresh
	return nil
}
