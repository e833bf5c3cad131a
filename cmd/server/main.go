// Package main is the entry point for the fournil API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fournil/internal/config"
	"fournil/internal/core/id"
	"fournil/internal/domain"
	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/domain/catalogs/lossrate"
	"fournil/internal/domain/catalogs/overhead"
	"fournil/internal/domain/catalogs/packaging"
	"fournil/internal/domain/catalogs/promotion"
	"fournil/internal/domain/catalogs/recipe"
	"fournil/internal/domain/catalogs/salesformat"
	"fournil/internal/domain/pricing"
	"fournil/internal/domain/propagation"
	"fournil/internal/domain/records/purchase"
	v1 "fournil/internal/infrastructure/http/v1"
	"fournil/internal/infrastructure/storage/postgres"
	"fournil/internal/infrastructure/storage/postgres/catalog_repo"
	"fournil/internal/infrastructure/storage/postgres/record_repo"
	"fournil/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting fournil server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.DSN)
	poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	poolCfg.MinConns = int32(cfg.Database.MinConns)

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	ingredientRepo := catalog_repo.NewIngredientRepo(txManager)
	recipeRepo := catalog_repo.NewRecipeRepo(txManager)
	packagingRepo := catalog_repo.NewPackagingRepo(txManager)
	overheadRepo := catalog_repo.NewOverheadRepo(txManager)
	lossRateRepo := catalog_repo.NewLossRateRepo(txManager)
	formatRepo := catalog_repo.NewSalesFormatRepo(txManager)
	promotionRepo := catalog_repo.NewPromotionRepo(txManager)
	purchaseRepo := record_repo.NewPurchaseRepo(txManager)

	// --- Audit ---
	auditSvc, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}

	// --- Services ---
	ingredientSvc := ingredient.NewService(ingredientRepo, txManager)
	recipeSvc := recipe.NewService(recipeRepo, txManager)
	packagingSvc := packaging.NewService(packagingRepo, txManager)
	overheadSvc := overhead.NewService(overheadRepo, txManager)
	lossRateSvc := lossrate.NewService(lossRateRepo, txManager)
	formatSvc := salesformat.NewService(formatRepo, txManager)
	promotionSvc := promotion.NewService(promotionRepo, txManager)
	purchaseSvc := purchase.NewService(purchaseRepo, txManager)

	// --- Pricing (cost cascade) ---
	loader := &propagation.Loader{
		Ingredients: ingredientRepo,
		Purchases:   purchaseRepo,
		Recipes:     recipeRepo,
		Packaging:   packagingRepo,
		Overheads:   overheadRepo,
		LossRates:   lossRateRepo,
		Formats:     formatRepo,
	}
	store := &catalog_repo.DerivedStore{
		Ingredients: ingredientRepo,
		Recipes:     recipeRepo,
		Formats:     formatRepo,
	}
	pricingSvc := pricing.NewService(loader, store, txManager)

	deps := hookDeps{pricing: pricingSvc, audit: auditSvc}

	// Every catalog mutation reprices its dependents before the mutating
	// call returns; purchase records drive the ingredient price table.
	wireCatalogHooks(ingredientSvc.Hooks(), deps, propagation.KindIngredient, "ingredient",
		func(ing *ingredient.Ingredient) id.ID { return ing.ID })
	wireCatalogHooks(recipeSvc.Hooks(), deps, propagation.KindRecipe, "recipe",
		func(r *recipe.Recipe) id.ID { return r.ID })
	wireCatalogHooks(packagingSvc.Hooks(), deps, propagation.KindPackaging, "packaging",
		func(p *packaging.Packaging) id.ID { return p.ID })
	wireCatalogHooks(overheadSvc.Hooks(), deps, propagation.KindCharges, "overhead_charges",
		func(c *overhead.Charges) id.ID { return c.ID })
	wireCatalogHooks(lossRateSvc.Hooks(), deps, propagation.KindLossRate, "loss_rate",
		func(l *lossrate.LossRate) id.ID { return l.ID })
	wireCatalogHooks(formatSvc.Hooks(), deps, propagation.KindFormat, "sales_format",
		func(f *salesformat.Format) id.ID { return f.ID })

	// Promotions never enter the cost cascade; their mutations are only
	// audit-logged.
	wireAuditHooks(promotionSvc.Hooks(), auditSvc, "promotion",
		func(p *promotion.Promotion) id.ID { return p.ID })

	purchaseSvc.OnAfterChange(func(ctx context.Context, ingredientID id.ID) ([]*salesformat.Format, error) {
		repriced, err := pricingSvc.EntityChanged(ctx, ingredientID, propagation.KindPurchase)
		if err != nil {
			return nil, err
		}
		deps.logRepriced(ctx, repriced)
		return repriced, nil
	})

	// Re-derive everything once at startup so stored values cannot drift
	// from their inputs across deploys.
	if err := pricingSvc.Init(ctx); err != nil {
		log.Fatalw("failed to run initial cost cascade", "error", err)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:        pool,
		Logger:      log,
		Ingredients: ingredientSvc,
		Recipes:     recipeSvc,
		Packaging:   packagingSvc,
		Overheads:   overheadSvc,
		LossRates:   lossRateSvc,
		Formats:     formatSvc,
		Promotions:  promotionSvc,
		Purchases:   purchaseSvc,
		Pricing:     pricingSvc,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

type hookDeps struct {
	pricing *pricing.Service
	audit   *postgres.AuditService
}

// logRepriced records one audit entry per repriced format, best effort.
func (d hookDeps) logRepriced(ctx context.Context, formats []*salesformat.Format) {
	for _, f := range formats {
		err := d.audit.LogChange(ctx, "sales_format", f.ID, postgres.AuditActionReprice, map[string]any{
			"totalCost":        f.Derived.TotalCost,
			"recommendedPrice": f.Derived.RecommendedPrice,
			"incomplete":       f.Incomplete,
		})
		if err != nil {
			logger.Warn(ctx, "audit reprice entry failed", "format_id", f.ID, "error", err)
		}
	}
}

// wireCatalogHooks registers audit logging and repricing on a catalog's
// lifecycle events.
func wireCatalogHooks[T any](
	hooks *domain.HookRegistry[T],
	deps hookDeps,
	kind propagation.EntityKind,
	entityType string,
	idOf func(T) id.ID,
) {
	reprice := func(ctx context.Context, item T, action postgres.AuditAction) error {
		if err := deps.audit.LogChange(ctx, entityType, idOf(item), action, nil); err != nil {
			logger.Warn(ctx, "audit entry failed", "entity", entityType, "error", err)
		}
		repriced, err := deps.pricing.EntityChanged(ctx, idOf(item), kind)
		if err != nil {
			return err
		}
		deps.logRepriced(ctx, repriced)
		return nil
	}

	hooks.OnAfterCreate(func(ctx context.Context, item T) error {
		return reprice(ctx, item, postgres.AuditActionCreate)
	})
	hooks.OnAfterUpdate(func(ctx context.Context, item T) error {
		return reprice(ctx, item, postgres.AuditActionUpdate)
	})
	hooks.OnAfterDelete(func(ctx context.Context, item T) error {
		return reprice(ctx, item, postgres.AuditActionDelete)
	})
}

// wireAuditHooks registers audit logging only, for catalogs outside the
// cost cascade.
func wireAuditHooks[T any](
	hooks *domain.HookRegistry[T],
	audit *postgres.AuditService,
	entityType string,
	idOf func(T) id.ID,
) {
	record := func(action postgres.AuditAction) func(context.Context, T) error {
		return func(ctx context.Context, item T) error {
			if err := audit.LogChange(ctx, entityType, idOf(item), action, nil); err != nil {
				logger.Warn(ctx, "audit entry failed", "entity", entityType, "error", err)
			}
			return nil
		}
	}

	hooks.OnAfterCreate(record(postgres.AuditActionCreate))
	hooks.OnAfterUpdate(record(postgres.AuditActionUpdate))
	hooks.OnAfterDelete(record(postgres.AuditActionDelete))
}
