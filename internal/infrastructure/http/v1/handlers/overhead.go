package handlers

import (
	"fournil/internal/domain/catalogs/overhead"
	"fournil/internal/infrastructure/http/v1/dto"
)

// OverheadHTTPHandler aliases the configured generic handler.
type OverheadHTTPHandler = CatalogHandler[
	*overhead.Charges,
	dto.CreateOverheadRequest,
	dto.UpdateOverheadRequest,
]

// NewOverheadHandler creates a configured overhead charges handler.
func NewOverheadHandler(base *BaseHandler, service *overhead.Service) *OverheadHTTPHandler {
	config := CatalogHandlerConfig[
		*overhead.Charges,
		dto.CreateOverheadRequest,
		dto.UpdateOverheadRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "overhead charges",

		MapCreateDTO: func(req dto.CreateOverheadRequest) *overhead.Charges {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateOverheadRequest, existing *overhead.Charges) *overhead.Charges {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *overhead.Charges) any {
			return dto.FromOverhead(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
