package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fournil/internal/core/id"
	"fournil/internal/domain"
	"fournil/internal/domain/catalogs/recipe"
	"fournil/internal/infrastructure/storage/postgres"
)

const (
	recipeTable     = "cat_recipes"
	recipeLineTable = "cat_recipe_lines"
)

// recipeLineRow mirrors one row of the recipe line table.
type recipeLineRow struct {
	RecipeID id.ID `db:"recipe_id"`
	LineNo   int   `db:"line_no"`
	recipe.Line
}

// RecipeRepo implements recipe.Repository. Lines live in a child table and
// are loaded and replaced together with the recipe.
type RecipeRepo struct {
	*BaseCatalogRepo[*recipe.Recipe]
}

// NewRecipeRepo creates a new recipe repository.
func NewRecipeRepo(txm *postgres.TxManager) *RecipeRepo {
	return &RecipeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			recipeTable,
			postgres.ExtractDBColumns[recipe.Recipe](),
			func() *recipe.Recipe { return &recipe.Recipe{} },
		),
	}
}

// Create inserts the recipe header and its lines.
func (r *RecipeRepo) Create(ctx context.Context, rec *recipe.Recipe) error {
	if err := r.BaseCatalogRepo.Create(ctx, rec); err != nil {
		return err
	}
	return r.insertLines(ctx, rec)
}

// Update replaces the recipe header and rewrites its lines.
func (r *RecipeRepo) Update(ctx context.Context, rec *recipe.Recipe) error {
	if err := r.BaseCatalogRepo.Update(ctx, rec); err != nil {
		return err
	}
	if err := r.deleteLines(ctx, rec.ID); err != nil {
		return err
	}
	return r.insertLines(ctx, rec)
}

// GetByID retrieves the recipe with its lines.
func (r *RecipeRepo) GetByID(ctx context.Context, recipeID id.ID) (*recipe.Recipe, error) {
	rec, err := r.BaseCatalogRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, []*recipe.Recipe{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetByCode retrieves the recipe with its lines.
func (r *RecipeRepo) GetByCode(ctx context.Context, code string) (*recipe.Recipe, error) {
	rec, err := r.BaseCatalogRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, []*recipe.Recipe{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

// List retrieves recipes with their lines.
func (r *RecipeRepo) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*recipe.Recipe], error) {
	result, err := r.BaseCatalogRepo.List(ctx, f)
	if err != nil {
		return result, err
	}
	if err := r.loadLines(ctx, result.Items); err != nil {
		return result, err
	}
	return result, nil
}

// UpdateDerived writes only the engine-computed cost columns, without
// bumping the optimistic-lock version.
func (r *RecipeRepo) UpdateDerived(ctx context.Context, rec *recipe.Recipe) error {
	q := r.Builder().
		Update(recipeTable).
		Set("total_ingredient_cost", rec.TotalIngredientCost).
		Set("cost_per_unit", rec.CostPerUnit).
		Set("incomplete", rec.Incomplete).
		Where(squirrel.Eq{"id": rec.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update derived: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update derived %s: %w", recipeTable, err)
	}
	return nil
}

func (r *RecipeRepo) insertLines(ctx context.Context, rec *recipe.Recipe) error {
	if len(rec.Lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(recipeLineTable).
		Columns("recipe_id", "line_no", "ingredient_id", "quantity", "unit")
	for i, line := range rec.Lines {
		q = q.Values(rec.ID, i+1, line.IngredientID, line.Quantity, line.Unit)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert recipe lines: %w", err)
	}
	return nil
}

func (r *RecipeRepo) deleteLines(ctx context.Context, recipeID id.ID) error {
	q := r.Builder().
		Delete(recipeLineTable).
		Where(squirrel.Eq{"recipe_id": recipeID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete recipe lines: %w", err)
	}
	return nil
}

// loadLines fills Lines for the given recipes in one query.
func (r *RecipeRepo) loadLines(ctx context.Context, recipes []*recipe.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[id.ID]*recipe.Recipe, len(recipes))
	ids := make([]id.ID, 0, len(recipes))
	for _, rec := range recipes {
		rec.Lines = nil
		byID[rec.ID] = rec
		ids = append(ids, rec.ID)
	}

	q := r.Builder().
		Select("recipe_id", "line_no", "ingredient_id", "quantity", "unit").
		From(recipeLineTable).
		Where(squirrel.Eq{"recipe_id": ids}).
		OrderBy("recipe_id", "line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build load lines: %w", err)
	}

	var rows []recipeLineRow
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return fmt.Errorf("load recipe lines: %w", err)
	}

	for _, row := range rows {
		if rec, ok := byID[row.RecipeID]; ok {
			rec.Lines = append(rec.Lines, row.Line)
		}
	}
	return nil
}
