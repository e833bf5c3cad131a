package handlers

import (
	"fournil/internal/domain/catalogs/promotion"
	"fournil/internal/infrastructure/http/v1/dto"
)

// PromotionHTTPHandler aliases the configured generic handler.
type PromotionHTTPHandler = CatalogHandler[
	*promotion.Promotion,
	dto.CreatePromotionRequest,
	dto.UpdatePromotionRequest,
]

// NewPromotionHandler creates a configured promotion handler.
func NewPromotionHandler(base *BaseHandler, service *promotion.Service) *PromotionHTTPHandler {
	config := CatalogHandlerConfig[
		*promotion.Promotion,
		dto.CreatePromotionRequest,
		dto.UpdatePromotionRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "promotion",

		MapCreateDTO: func(req dto.CreatePromotionRequest) *promotion.Promotion {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdatePromotionRequest, existing *promotion.Promotion) *promotion.Promotion {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *promotion.Promotion) any {
			return dto.FromPromotion(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
