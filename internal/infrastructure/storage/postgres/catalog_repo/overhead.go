package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fournil/internal/core/id"
	"fournil/internal/domain"
	"fournil/internal/domain/catalogs/overhead"
	"fournil/internal/infrastructure/storage/postgres"
)

const (
	overheadTable          = "cat_overhead_charges"
	overheadComponentTable = "cat_overhead_components"
)

type componentRow struct {
	ChargesID id.ID `db:"charges_id"`
	LineNo    int   `db:"line_no"`
	overhead.Component
}

// OverheadRepo implements overhead.Repository. Components live in a child
// table and are loaded and replaced together with the charges record.
type OverheadRepo struct {
	*BaseCatalogRepo[*overhead.Charges]
}

// NewOverheadRepo creates a new overhead charges repository.
func NewOverheadRepo(txm *postgres.TxManager) *OverheadRepo {
	return &OverheadRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			overheadTable,
			postgres.ExtractDBColumns[overhead.Charges](),
			func() *overhead.Charges { return &overhead.Charges{} },
		),
	}
}

// Create inserts the charges header and its components.
func (r *OverheadRepo) Create(ctx context.Context, c *overhead.Charges) error {
	if err := r.BaseCatalogRepo.Create(ctx, c); err != nil {
		return err
	}
	return r.insertComponents(ctx, c)
}

// Update replaces the charges header and rewrites its components.
func (r *OverheadRepo) Update(ctx context.Context, c *overhead.Charges) error {
	if err := r.BaseCatalogRepo.Update(ctx, c); err != nil {
		return err
	}
	if err := r.deleteComponents(ctx, c.ID); err != nil {
		return err
	}
	return r.insertComponents(ctx, c)
}

// GetByID retrieves the charges record with its components.
func (r *OverheadRepo) GetByID(ctx context.Context, chargesID id.ID) (*overhead.Charges, error) {
	c, err := r.BaseCatalogRepo.GetByID(ctx, chargesID)
	if err != nil {
		return nil, err
	}
	if err := r.loadComponents(ctx, []*overhead.Charges{c}); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByCode retrieves the charges record with its components.
func (r *OverheadRepo) GetByCode(ctx context.Context, code string) (*overhead.Charges, error) {
	c, err := r.BaseCatalogRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := r.loadComponents(ctx, []*overhead.Charges{c}); err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves charges records with their components.
func (r *OverheadRepo) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*overhead.Charges], error) {
	result, err := r.BaseCatalogRepo.List(ctx, f)
	if err != nil {
		return result, err
	}
	if err := r.loadComponents(ctx, result.Items); err != nil {
		return result, err
	}
	return result, nil
}

func (r *OverheadRepo) insertComponents(ctx context.Context, c *overhead.Charges) error {
	if len(c.Components) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(overheadComponentTable).
		Columns("charges_id", "line_no", "kind", "amount")
	for i, comp := range c.Components {
		q = q.Values(c.ID, i+1, comp.Kind, comp.Amount)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert components: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert overhead components: %w", err)
	}
	return nil
}

func (r *OverheadRepo) deleteComponents(ctx context.Context, chargesID id.ID) error {
	q := r.Builder().
		Delete(overheadComponentTable).
		Where(squirrel.Eq{"charges_id": chargesID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete components: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete overhead components: %w", err)
	}
	return nil
}

func (r *OverheadRepo) loadComponents(ctx context.Context, charges []*overhead.Charges) error {
	if len(charges) == 0 {
		return nil
	}

	byID := make(map[id.ID]*overhead.Charges, len(charges))
	ids := make([]id.ID, 0, len(charges))
	for _, c := range charges {
		c.Components = nil
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	q := r.Builder().
		Select("charges_id", "line_no", "kind", "amount").
		From(overheadComponentTable).
		Where(squirrel.Eq{"charges_id": ids}).
		OrderBy("charges_id", "line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build load components: %w", err)
	}

	var rows []componentRow
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return fmt.Errorf("load overhead components: %w", err)
	}

	for _, row := range rows {
		if c, ok := byID[row.ChargesID]; ok {
			c.Components = append(c.Components, row.Component)
		}
	}
	return nil
}
