package handlers

import (
	"fournil/internal/domain/catalogs/packaging"
	"fournil/internal/infrastructure/http/v1/dto"
)

// PackagingHTTPHandler aliases the configured generic handler.
type PackagingHTTPHandler = CatalogHandler[
	*packaging.Packaging,
	dto.CreatePackagingRequest,
	dto.UpdatePackagingRequest,
]

// NewPackagingHandler creates a configured packaging handler.
func NewPackagingHandler(base *BaseHandler, service *packaging.Service) *PackagingHTTPHandler {
	config := CatalogHandlerConfig[
		*packaging.Packaging,
		dto.CreatePackagingRequest,
		dto.UpdatePackagingRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "packaging",

		MapCreateDTO: func(req dto.CreatePackagingRequest) *packaging.Packaging {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdatePackagingRequest, existing *packaging.Packaging) *packaging.Packaging {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *packaging.Packaging) any {
			return dto.FromPackaging(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
