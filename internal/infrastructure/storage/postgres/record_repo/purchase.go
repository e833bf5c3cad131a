// Package record_repo provides PostgreSQL persistence for append-only
// record entities.
package record_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fournil/internal/core/apperror"
	"fournil/internal/core/id"
	"fournil/internal/domain"
	"fournil/internal/domain/records/purchase"
	"fournil/internal/infrastructure/storage/postgres"
)

const purchaseTable = "rec_purchases"

// PurchaseRepo implements purchase.Repository. Purchase records are
// append-only: no update statement exists here on purpose.
type PurchaseRepo struct {
	txm        *postgres.TxManager
	selectCols []string
}

// NewPurchaseRepo creates a new purchase record repository.
func NewPurchaseRepo(txm *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[purchase.Record](),
	}
}

func (r *PurchaseRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *PurchaseRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(r.selectCols...).
		From(purchaseTable)
}

// Create inserts a new purchase record.
func (r *PurchaseRepo) Create(ctx context.Context, rec *purchase.Record) error {
	data := postgres.StructToMap(rec)
	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	q := r.builder().
		Insert(purchaseTable).
		SetMap(filtered)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", purchaseTable, err)
	}
	return nil
}

// GetByID retrieves a record by ID.
func (r *PurchaseRepo) GetByID(ctx context.Context, recordID id.ID) (*purchase.Record, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": recordID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec purchase.Record
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(purchaseTable, recordID.String())
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return &rec, nil
}

// Delete removes a record. Physical removal: purchase records have no
// deletion mark, deleting one is the sanctioned correction path.
func (r *PurchaseRepo) Delete(ctx context.Context, recordID id.ID) error {
	q := r.builder().
		Delete(purchaseTable).
		Where(squirrel.Eq{"id": recordID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("execute delete: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(purchaseTable, recordID.String())
	}
	return nil
}

// ListByIngredient retrieves all records for one ingredient, oldest first.
func (r *PurchaseRepo) ListByIngredient(ctx context.Context, ingredientID id.ID) ([]*purchase.Record, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"ingredient_id": ingredientID}).
		OrderBy("purchase_date ASC", "created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []*purchase.Record
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("list by ingredient: %w", err)
	}
	return records, nil
}

// List retrieves records with pagination, newest purchase first.
func (r *PurchaseRepo) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*purchase.Record], error) {
	result := domain.ListResult[*purchase.Record]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	q := r.baseSelect()

	if f.Search != "" {
		q = q.Where(squirrel.ILike{"supplier": "%" + f.Search + "%"})
	}
	if len(f.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": f.IDs})
	}

	countQ := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("purchase_date DESC", "created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}
	return result, nil
}

// ListAll retrieves every record, oldest first. Supplier analytics input.
func (r *PurchaseRepo) ListAll(ctx context.Context) ([]*purchase.Record, error) {
	q := r.baseSelect().
		OrderBy("purchase_date ASC", "created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []*purchase.Record
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("list all: %w", err)
	}
	return records, nil
}
