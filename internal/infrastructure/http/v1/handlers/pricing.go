package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fournil/internal/core/apperror"
	"fournil/internal/core/id"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/promotion"
	"fournil/internal/domain/pricing"
	"fournil/internal/infrastructure/http/v1/dto"
)

// PricingHandler exposes the derived pricing breakdown of sales formats.
type PricingHandler struct {
	*BaseHandler
	service    *pricing.Service
	promotions *promotion.Service
}

// NewPricingHandler creates a new pricing handler.
func NewPricingHandler(base *BaseHandler, service *pricing.Service, promotions *promotion.Service) *PricingHandler {
	return &PricingHandler{
		BaseHandler: base,
		service:     service,
		promotions:  promotions,
	}
}

// FormatPricing handles GET /formats/:id/pricing.
// The cost cascade ignores promotions; here, at the presentation layer, the
// best currently running promotion is applied on top of the effective price.
func (h *PricingHandler) FormatPricing(c *gin.Context) {
	ctx := c.Request.Context()

	formatID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	format, err := h.service.FormatPricing(ctx, formatID)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.FromFormat(format)

	promos, err := h.promotions.ActiveForFormat(ctx, formatID, time.Now().UTC())
	if err != nil {
		h.Error(c, err)
		return
	}
	if promoted, ok := bestPromotedPrice(format.EffectivePrice, promos); ok {
		resp.PromotedPrice = &promoted
	}

	c.JSON(http.StatusOK, resp)
}

// bestPromotedPrice applies every running promotion to the single-pack price
// and keeps the lowest result. Volume-threshold promotions need a bought
// quantity above one, so they never discount a single pack.
func bestPromotedPrice(price types.Money, promos []*promotion.Promotion) (types.Money, bool) {
	best := price
	found := false
	for _, p := range promos {
		discounted := p.Apply(price, 1)
		if discounted.LessThan(best) {
			best = discounted
			found = true
		}
	}
	return best, found
}
