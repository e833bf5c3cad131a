package handlers

import (
	"fournil/internal/domain/catalogs/lossrate"
	"fournil/internal/infrastructure/http/v1/dto"
)

// LossRateHTTPHandler aliases the configured generic handler.
type LossRateHTTPHandler = CatalogHandler[
	*lossrate.LossRate,
	dto.CreateLossRateRequest,
	dto.UpdateLossRateRequest,
]

// NewLossRateHandler creates a configured loss rate handler.
func NewLossRateHandler(base *BaseHandler, service *lossrate.Service) *LossRateHTTPHandler {
	config := CatalogHandlerConfig[
		*lossrate.LossRate,
		dto.CreateLossRateRequest,
		dto.UpdateLossRateRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "loss rate",

		MapCreateDTO: func(req dto.CreateLossRateRequest) *lossrate.LossRate {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateLossRateRequest, existing *lossrate.LossRate) *lossrate.LossRate {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *lossrate.LossRate) any {
			return dto.FromLossRate(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
