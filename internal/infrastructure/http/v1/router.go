// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/domain/catalogs/lossrate"
	"fournil/internal/domain/catalogs/overhead"
	"fournil/internal/domain/catalogs/packaging"
	"fournil/internal/domain/catalogs/promotion"
	"fournil/internal/domain/catalogs/recipe"
	"fournil/internal/domain/catalogs/salesformat"
	"fournil/internal/domain/pricing"
	"fournil/internal/domain/records/purchase"
	"fournil/internal/infrastructure/http/v1/handlers"
	"fournil/internal/infrastructure/http/v1/middleware"
	"fournil/internal/infrastructure/storage/postgres"
	"fournil/pkg/logger"
)

// RouterConfig carries the wired services the router exposes. Hook
// registration (catalog mutations triggering repricing) happens in the
// composition root, before the router sees the services.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	Ingredients *ingredient.Service
	Recipes     *recipe.Service
	Packaging   *packaging.Service
	Overheads   *overhead.Service
	LossRates   *lossrate.Service
	Formats     *salesformat.Service
	Promotions  *promotion.Service
	Purchases   *purchase.Service
	Pricing     *pricing.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerCatalogRoutes(v1, baseHandler, cfg)
		registerPurchaseRoutes(v1, baseHandler, cfg)
		registerPricingRoutes(v1, baseHandler, cfg)
		registerAnalyticsRoutes(v1, baseHandler, cfg)
	}

	return router
}

// registerCatalogRoutes registers CRUD endpoints for every catalog.
func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")

	// --- INGREDIENTS ---
	{
		handler := handlers.NewIngredientHandler(base, cfg.Ingredients)
		group := catalogs.Group("/ingredients")
		group.GET("/low-stock", handler.LowStock)
		RegisterCatalogRoutes(group, handler)
	}

	// --- RECIPES ---
	{
		handler := handlers.NewRecipeHandler(base, cfg.Recipes)
		RegisterCatalogRoutes(catalogs.Group("/recipes"), handler)
	}

	// --- PACKAGING ---
	{
		handler := handlers.NewPackagingHandler(base, cfg.Packaging)
		RegisterCatalogRoutes(catalogs.Group("/packaging"), handler)
	}

	// --- OVERHEAD CHARGES ---
	{
		handler := handlers.NewOverheadHandler(base, cfg.Overheads)
		RegisterCatalogRoutes(catalogs.Group("/overheads"), handler)
	}

	// --- LOSS RATES ---
	{
		handler := handlers.NewLossRateHandler(base, cfg.LossRates)
		RegisterCatalogRoutes(catalogs.Group("/loss-rates"), handler)
	}

	// --- SALES FORMATS ---
	{
		handler := handlers.NewFormatHandler(base, cfg.Formats)
		RegisterCatalogRoutes(catalogs.Group("/formats"), handler)
	}

	// --- PROMOTIONS ---
	{
		handler := handlers.NewPromotionHandler(base, cfg.Promotions)
		RegisterCatalogRoutes(catalogs.Group("/promotions"), handler)
	}
}

// registerPurchaseRoutes registers purchase record endpoints.
func registerPurchaseRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewPurchaseHandler(base, cfg.Purchases)

	purchases := rg.Group("/purchases")
	{
		purchases.GET("", handler.List)
		purchases.POST("", handler.Create)
		purchases.GET("/:id", handler.Get)
		purchases.DELETE("/:id", handler.Delete)
		purchases.GET("/by-ingredient/:id", handler.ListByIngredient)
	}
}

// registerPricingRoutes registers the derived pricing breakdown endpoint.
func registerPricingRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewPricingHandler(base, cfg.Pricing, cfg.Promotions)
	rg.GET("/formats/:id/pricing", handler.FormatPricing)
}

// registerAnalyticsRoutes registers profitability analytics endpoints.
func registerAnalyticsRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewAnalyticsHandler(base, cfg.Pricing)

	analytics := rg.Group("/analytics")
	{
		analytics.GET("/abc", handler.ABC)
		analytics.GET("/break-even", handler.BreakEven)
		analytics.GET("/suppliers", handler.Suppliers)
		analytics.POST("/sensitivity", handler.Sensitivity)
		analytics.GET("/kpis", handler.KPIs)
	}
}
