package recipe

import (
	"fournil/internal/domain"
)

// Repository defines the interface for Recipe persistence.
// Implementations must load and store Lines together with the recipe.
type Repository interface {
	domain.CatalogRepository[*Recipe]
}
