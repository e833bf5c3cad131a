package handlers

import (
	"fournil/internal/domain/catalogs/salesformat"
	"fournil/internal/infrastructure/http/v1/dto"
)

// FormatHTTPHandler aliases the configured generic handler.
type FormatHTTPHandler = CatalogHandler[
	*salesformat.Format,
	dto.CreateFormatRequest,
	dto.UpdateFormatRequest,
]

// NewFormatHandler creates a configured sales format handler.
func NewFormatHandler(base *BaseHandler, service *salesformat.Service) *FormatHTTPHandler {
	config := CatalogHandlerConfig[
		*salesformat.Format,
		dto.CreateFormatRequest,
		dto.UpdateFormatRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "sales format",

		MapCreateDTO: func(req dto.CreateFormatRequest) *salesformat.Format {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateFormatRequest, existing *salesformat.Format) *salesformat.Format {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *salesformat.Format) any {
			return dto.FromFormat(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
