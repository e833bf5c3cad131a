package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/id"
	"fournil/internal/domain/analytics"
	"fournil/internal/domain/pricing"
	"fournil/internal/infrastructure/http/v1/dto"
)

// defaultSensitivityDeltas are simulated when the request names none.
var defaultSensitivityDeltas = []decimal.Decimal{
	decimal.NewFromInt(-10),
	decimal.NewFromInt(-5),
	decimal.Zero,
	decimal.NewFromInt(5),
	decimal.NewFromInt(10),
}

// AnalyticsHandler serves profitability analytics over the current
// pricing snapshot, so every report is consistent with the prices the
// catalog endpoints return.
type AnalyticsHandler struct {
	*BaseHandler
	pricing *pricing.Service
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(base *BaseHandler, pricingSvc *pricing.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler: base,
		pricing:     pricingSvc,
	}
}

// ABC handles GET /analytics/abc.
func (h *AnalyticsHandler) ABC(c *gin.Context) {
	formats, err := h.pricing.ActiveFormats(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": analytics.ClassifyABC(formats),
	})
}

// BreakEven handles GET /analytics/break-even. The fixed-charge base
// defaults to the catalog's monthly overhead total; a fixedCharges query
// parameter overrides it.
func (h *AnalyticsHandler) BreakEven(c *gin.Context) {
	ctx := c.Request.Context()

	var fixedCharges decimal.Decimal
	if raw := c.Query("fixedCharges"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.IsNegative() {
			h.Error(c, apperror.NewValidation("fixedCharges must be a non-negative number"))
			return
		}
		fixedCharges = parsed
	} else {
		var err error
		fixedCharges, err = h.pricing.MonthlyFixedCharges(ctx)
		if err != nil {
			h.Error(c, err)
			return
		}
	}

	formats, err := h.pricing.ActiveFormats(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := analytics.ComputeBreakEven(fixedCharges, formats)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Suppliers handles GET /analytics/suppliers.
func (h *AnalyticsHandler) Suppliers(c *gin.Context) {
	ctx := c.Request.Context()

	ingredients, err := h.pricing.ActiveIngredients(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	purchases, err := h.pricing.PurchaseHistory(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	comparisons, err := analytics.CompareSuppliers(ingredients, purchases, time.Now().UTC())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": comparisons})
}

// Sensitivity handles POST /analytics/sensitivity.
func (h *AnalyticsHandler) Sensitivity(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SensitivityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	formatID, err := id.Parse(req.FormatID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid formatId"))
		return
	}

	format, err := h.pricing.FormatPricing(ctx, formatID)
	if err != nil {
		h.Error(c, err)
		return
	}

	deltas := req.DeltasPct
	if len(deltas) == 0 {
		deltas = defaultSensitivityDeltas
	}

	scenarios, err := analytics.SimulatePriceSensitivity(analytics.SensitivityInput{
		Format:     format,
		DeltasPct:  deltas,
		Elasticity: req.Elasticity,
		BaseVolume: req.BaseVolume,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"formatId":  format.ID.String(),
		"scenarios": scenarios,
	})
}

// KPIs handles GET /analytics/kpis.
func (h *AnalyticsHandler) KPIs(c *gin.Context) {
	formats, err := h.pricing.ActiveFormats(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics.ComputeKPIs(formats))
}
