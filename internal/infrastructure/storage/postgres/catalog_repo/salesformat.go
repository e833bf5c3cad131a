package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fournil/internal/core/id"
	"fournil/internal/domain"
	"fournil/internal/domain/catalogs/salesformat"
	"fournil/internal/infrastructure/storage/postgres"
)

const (
	formatTable       = "cat_sales_formats"
	formatChargeTable = "cat_format_charges"
)

type formatChargeRow struct {
	FormatID id.ID `db:"format_id"`
	ChargeID id.ID `db:"charge_id"`
}

// SalesFormatRepo implements salesformat.Repository. The selected overhead
// charges live in a link table and are loaded and replaced together with
// the format; derived pricing columns persist in the format row itself.
type SalesFormatRepo struct {
	*BaseCatalogRepo[*salesformat.Format]
}

// NewSalesFormatRepo creates a new sales format repository.
func NewSalesFormatRepo(txm *postgres.TxManager) *SalesFormatRepo {
	return &SalesFormatRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			formatTable,
			postgres.ExtractDBColumns[salesformat.Format](),
			func() *salesformat.Format { return &salesformat.Format{} },
		),
	}
}

// Create inserts the format and its charge links.
func (r *SalesFormatRepo) Create(ctx context.Context, f *salesformat.Format) error {
	if err := r.BaseCatalogRepo.Create(ctx, f); err != nil {
		return err
	}
	return r.insertCharges(ctx, f)
}

// Update replaces the format and rewrites its charge links.
func (r *SalesFormatRepo) Update(ctx context.Context, f *salesformat.Format) error {
	if err := r.BaseCatalogRepo.Update(ctx, f); err != nil {
		return err
	}
	if err := r.deleteCharges(ctx, f.ID); err != nil {
		return err
	}
	return r.insertCharges(ctx, f)
}

// UpdateDerivedBatch writes only the engine-computed columns of many formats
// in a single round-trip, bypassing the optimistic lock: repricing changes no
// operator-owned field, so a version bump would spuriously conflict with
// concurrent edits. A propagation pass routinely touches every format
// depending on a changed ingredient, so the updates go out as one pgx batch.
// Requires a transaction context.
func (r *SalesFormatRepo) UpdateDerivedBatch(ctx context.Context, formats []*salesformat.Format) error {
	if len(formats) == 0 {
		return nil
	}

	queries := make([]postgres.BatchQuery, 0, len(formats))
	for _, f := range formats {
		sql, args, err := r.derivedUpdateSQL(f)
		if err != nil {
			return err
		}
		queries = append(queries, postgres.BatchQuery{SQL: sql, Args: args})
	}

	if err := postgres.NewBatchExecutor(r.txm).ExecuteBatch(ctx, queries); err != nil {
		return fmt.Errorf("update derived %s: %w", formatTable, err)
	}
	return nil
}

func (r *SalesFormatRepo) derivedUpdateSQL(f *salesformat.Format) (string, []any, error) {
	q := r.Builder().
		Update(formatTable).
		Set("cost_cookies", f.CostCookies).
		Set("cost_packaging", f.CostPackaging).
		Set("cost_overhead", f.CostOverhead).
		Set("cost_losses", f.CostLosses).
		Set("total_cost", f.TotalCost).
		Set("recommended_price", f.RecommendedPrice).
		Set("effective_price", f.EffectivePrice).
		Set("unit_profit", f.UnitProfit).
		Set("realized_margin_pct", f.RealizedMarginPct).
		Set("state", f.State).
		Set("incomplete", f.Incomplete).
		Where(squirrel.Eq{"id": f.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build update derived: %w", err)
	}
	return sql, args, nil
}

// GetByID retrieves the format with its charge links.
func (r *SalesFormatRepo) GetByID(ctx context.Context, formatID id.ID) (*salesformat.Format, error) {
	f, err := r.BaseCatalogRepo.GetByID(ctx, formatID)
	if err != nil {
		return nil, err
	}
	if err := r.loadCharges(ctx, []*salesformat.Format{f}); err != nil {
		return nil, err
	}
	return f, nil
}

// GetByCode retrieves the format with its charge links.
func (r *SalesFormatRepo) GetByCode(ctx context.Context, code string) (*salesformat.Format, error) {
	f, err := r.BaseCatalogRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := r.loadCharges(ctx, []*salesformat.Format{f}); err != nil {
		return nil, err
	}
	return f, nil
}

// List retrieves formats with their charge links.
func (r *SalesFormatRepo) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*salesformat.Format], error) {
	result, err := r.BaseCatalogRepo.List(ctx, f)
	if err != nil {
		return result, err
	}
	if err := r.loadCharges(ctx, result.Items); err != nil {
		return result, err
	}
	return result, nil
}

func (r *SalesFormatRepo) insertCharges(ctx context.Context, f *salesformat.Format) error {
	if len(f.ChargeIDs) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(formatChargeTable).
		Columns("format_id", "charge_id")
	for _, cid := range f.ChargeIDs {
		q = q.Values(f.ID, cid)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert charges: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert format charges: %w", err)
	}
	return nil
}

func (r *SalesFormatRepo) deleteCharges(ctx context.Context, formatID id.ID) error {
	q := r.Builder().
		Delete(formatChargeTable).
		Where(squirrel.Eq{"format_id": formatID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete charges: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete format charges: %w", err)
	}
	return nil
}

func (r *SalesFormatRepo) loadCharges(ctx context.Context, formats []*salesformat.Format) error {
	if len(formats) == 0 {
		return nil
	}

	byID := make(map[id.ID]*salesformat.Format, len(formats))
	ids := make([]id.ID, 0, len(formats))
	for _, f := range formats {
		f.ChargeIDs = nil
		byID[f.ID] = f
		ids = append(ids, f.ID)
	}

	q := r.Builder().
		Select("format_id", "charge_id").
		From(formatChargeTable).
		Where(squirrel.Eq{"format_id": ids}).
		OrderBy("format_id", "charge_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build load charges: %w", err)
	}

	var rows []formatChargeRow
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return fmt.Errorf("load format charges: %w", err)
	}

	for _, row := range rows {
		if f, ok := byID[row.FormatID]; ok {
			f.ChargeIDs = append(f.ChargeIDs, row.ChargeID)
		}
	}
	return nil
}
