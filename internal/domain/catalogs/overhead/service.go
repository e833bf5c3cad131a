package overhead

import (
	"fournil/internal/core/tx"
	"fournil/internal/domain"
)

// Repository defines the interface for Charges persistence.
// Implementations must load and store Components together with the record.
type Repository interface {
	domain.CatalogRepository[*Charges]
}

// Service provides business logic for the Overhead Charges catalog.
type Service struct {
	*domain.CatalogService[*Charges]
	repo Repository
}

// NewService creates a new Charges service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Charges]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "overhead charges",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
