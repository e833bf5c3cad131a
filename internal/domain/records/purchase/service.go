package purchase

import (
	"context"
	"fmt"

	"fournil/internal/core/apperror"
	"fournil/internal/core/id"
	"fournil/internal/core/tx"
	"fournil/internal/domain"
	"fournil/internal/domain/catalogs/salesformat"
	"fournil/pkg/logger"
)

// AfterChange is invoked after a purchase record is created or deleted.
// The pricing layer hooks in here to re-derive the ingredient's unit price
// and reprice every dependent sales format before the call returns; the
// repriced formats flow back so the API can report them.
type AfterChange func(ctx context.Context, ingredientID id.ID) ([]*salesformat.Format, error)

// Service provides business logic for purchase records.
type Service struct {
	repo        Repository
	txManager   tx.Manager
	afterChange AfterChange
}

// NewService creates a new purchase record service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// OnAfterChange registers the propagation callback.
func (s *Service) OnAfterChange(fn AfterChange) {
	s.afterChange = fn
}

// Create records a new purchase, propagates the price change and returns
// the sales formats the change repriced.
func (s *Service) Create(ctx context.Context, record *Record) ([]*salesformat.Format, error) {
	if err := record.Validate(ctx); err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewValidation(err.Error())
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("create purchase record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase recorded",
		"ingredient_id", record.IngredientID,
		"supplier", record.Supplier,
		"quantity", record.Quantity,
		"total_price", record.TotalPrice,
	)

	return s.propagate(ctx, record.IngredientID)
}

// GetByID retrieves a purchase record.
func (s *Service) GetByID(ctx context.Context, recordID id.ID) (*Record, error) {
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("purchase record", recordID.String())
		}
		return nil, err
	}
	return record, nil
}

// Delete removes a purchase record and propagates the price change.
// Deletion is the only permitted mutation of a recorded purchase.
func (s *Service) Delete(ctx context.Context, recordID id.ID) ([]*salesformat.Format, error) {
	record, err := s.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, recordID); err != nil {
			return fmt.Errorf("delete purchase record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.propagate(ctx, record.IngredientID)
}

// ListByIngredient returns the full purchase history of an ingredient.
func (s *Service) ListByIngredient(ctx context.Context, ingredientID id.ID) ([]*Record, error) {
	return s.repo.ListByIngredient(ctx, ingredientID)
}

// List returns purchase records, newest first.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Record], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListFilter().Limit
	}
	return s.repo.List(ctx, filter)
}

// ListAll returns every purchase record (supplier analytics input).
func (s *Service) ListAll(ctx context.Context) ([]*Record, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) propagate(ctx context.Context, ingredientID id.ID) ([]*salesformat.Format, error) {
	if s.afterChange == nil {
		return nil, nil
	}
	return s.afterChange(ctx, ingredientID)
}
