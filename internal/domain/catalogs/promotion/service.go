package promotion

import (
	"context"
	"time"

	"fournil/internal/core/id"
	"fournil/internal/core/tx"
	"fournil/internal/domain"
)

// Repository defines the interface for Promotion persistence.
type Repository interface {
	domain.CatalogRepository[*Promotion]

	// ListForFormat returns the active, non-deleted promotions of one format.
	ListForFormat(ctx context.Context, formatID id.ID) ([]*Promotion, error)
}

// Service provides business logic for the Promotion catalog.
type Service struct {
	*domain.CatalogService[*Promotion]
	repo Repository
}

// NewService creates a new Promotion service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Promotion]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "promotion",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}

// ActiveForFormat returns the promotions applicable to a format at the
// given time.
func (s *Service) ActiveForFormat(ctx context.Context, formatID id.ID, at time.Time) ([]*Promotion, error) {
	promos, err := s.repo.ListForFormat(ctx, formatID)
	if err != nil {
		return nil, err
	}

	applicable := make([]*Promotion, 0, len(promos))
	for _, p := range promos {
		if p.InWindow(at) {
			applicable = append(applicable, p)
		}
	}
	return applicable, nil
}
