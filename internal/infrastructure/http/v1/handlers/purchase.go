package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fournil/internal/core/apperror"
	"fournil/internal/core/id"
	"fournil/internal/domain"
	"fournil/internal/domain/catalogs/salesformat"
	"fournil/internal/domain/records/purchase"
	"fournil/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler serves the purchase record endpoints. Recording or
// deleting a purchase reprices dependent formats before responding, and
// the response carries the repriced formats.
type PurchaseHandler struct {
	*BaseHandler
	service *purchase.Service
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /purchases.
func (h *PurchaseHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record := req.ToEntity()
	repriced, err := h.service.Create(ctx, record)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePurchaseResponse{
		Purchase:        dto.FromPurchase(record),
		RepricedFormats: toRepricedFormats(repriced),
	})
}

// Get handles GET /purchases/:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	recordID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	record, err := h.service.GetByID(ctx, recordID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPurchase(record))
}

// List handles GET /purchases (newest first, supplier search).
func (h *PurchaseHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.ListFilter{
		Search: c.Query("search"),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.PurchaseResponse, len(result.Items))
	for i, record := range result.Items {
		items[i] = dto.FromPurchase(record)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// ListByIngredient handles GET /purchases/by-ingredient/:id.
func (h *PurchaseHandler) ListByIngredient(c *gin.Context) {
	ctx := c.Request.Context()

	ingredientID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	records, err := h.service.ListByIngredient(ctx, ingredientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.PurchaseResponse, len(records))
	for i, record := range records {
		items[i] = dto.FromPurchase(record)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Delete handles DELETE /purchases/:id. Purchases are immutable; deletion
// is the only correction mechanism, and it reprices like a create.
func (h *PurchaseHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	recordID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	repriced, err := h.service.Delete(ctx, recordID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"repricedFormats": toRepricedFormats(repriced),
	})
}

func toRepricedFormats(formats []*salesformat.Format) []dto.RepricedFormat {
	repriced := make([]dto.RepricedFormat, len(formats))
	for i, f := range formats {
		repriced[i] = dto.RepricedFormat{
			ID:               f.ID.String(),
			Code:             f.Code,
			Name:             f.Name,
			TotalCost:        f.Derived.TotalCost,
			RecommendedPrice: f.Derived.RecommendedPrice,
			Incomplete:       f.Incomplete,
		}
	}
	return repriced
}
