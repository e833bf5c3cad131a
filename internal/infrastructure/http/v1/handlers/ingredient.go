package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fournil/internal/domain"
	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/infrastructure/http/v1/dto"
)

// IngredientHTTPHandler aliases the configured generic handler.
type IngredientHTTPHandler struct {
	*CatalogHandler[*ingredient.Ingredient, dto.CreateIngredientRequest, dto.UpdateIngredientRequest]
	service *ingredient.Service
}

// NewIngredientHandler creates a configured ingredient handler.
func NewIngredientHandler(base *BaseHandler, service *ingredient.Service) *IngredientHTTPHandler {
	config := CatalogHandlerConfig[
		*ingredient.Ingredient,
		dto.CreateIngredientRequest,
		dto.UpdateIngredientRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "ingredient",

		MapCreateDTO: func(req dto.CreateIngredientRequest) *ingredient.Ingredient {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateIngredientRequest, existing *ingredient.Ingredient) *ingredient.Ingredient {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *ingredient.Ingredient) any {
			return dto.FromIngredient(entity)
		},
	}

	return &IngredientHTTPHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// LowStock handles GET /catalog/ingredients/low-stock.
func (h *IngredientHTTPHandler) LowStock(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.FindLowStock(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.IngredientResponse, len(result.Items))
	for i, ing := range result.Items {
		items[i] = dto.FromIngredient(ing)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
