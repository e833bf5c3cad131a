package handlers

import (
	"fournil/internal/domain/catalogs/recipe"
	"fournil/internal/infrastructure/http/v1/dto"
)

// RecipeHTTPHandler aliases the configured generic handler.
type RecipeHTTPHandler = CatalogHandler[
	*recipe.Recipe,
	dto.CreateRecipeRequest,
	dto.UpdateRecipeRequest,
]

// NewRecipeHandler creates a configured recipe handler.
func NewRecipeHandler(base *BaseHandler, service *recipe.Service) *RecipeHTTPHandler {
	config := CatalogHandlerConfig[
		*recipe.Recipe,
		dto.CreateRecipeRequest,
		dto.UpdateRecipeRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "recipe",

		MapCreateDTO: func(req dto.CreateRecipeRequest) *recipe.Recipe {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateRecipeRequest, existing *recipe.Recipe) *recipe.Recipe {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *recipe.Recipe) any {
			return dto.FromRecipe(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
