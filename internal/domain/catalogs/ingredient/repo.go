package ingredient

import (
	"context"

	"fournil/internal/domain"
)

// Repository defines the interface for Ingredient persistence.
type Repository interface {
	domain.CatalogRepository[*Ingredient]

	// FindLowStock retrieves ingredients with stock below minimum.
	FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Ingredient], error)
}
