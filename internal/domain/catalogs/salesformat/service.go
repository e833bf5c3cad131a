package salesformat

import (
	"fournil/internal/core/tx"
	"fournil/internal/domain"
)

// Repository defines the interface for Format persistence.
// Implementations must load and store ChargeIDs and Derived together
// with the format.
type Repository interface {
	domain.CatalogRepository[*Format]
}

// Service provides business logic for the Sales Format catalog.
type Service struct {
	*domain.CatalogService[*Format]
	repo Repository
}

// NewService creates a new Format service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Format]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "sales format",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
