// Package main seeds the database with a small demo dataset: a handful of
// ingredients with purchase history, one cookie recipe, two packagings and
// two priced sales formats. Safe to run repeatedly; existing codes are
// skipped.
package main

import (
	"context"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/id"
	"fournil/internal/core/measure"
	"fournil/internal/core/types"
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
	"fournil/internal/infrastructure/storage/postgres"
	"fournil/internal/infrastructure/storage/postgres/catalog_repo"
	"fournil/internal/infrastructure/storage/postgres/record_repo"
	"fournil/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		os.Exit(1)
	}

	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	s := seeder{
		log:         log,
		ingredients: ingredient.NewService(catalog_repo.NewIngredientRepo(txManager), txManager),
		recipes:     recipe.NewService(catalog_repo.NewRecipeRepo(txManager), txManager),
		packaging:   packaging.NewService(catalog_repo.NewPackagingRepo(txManager), txManager),
		overheads:   overhead.NewService(catalog_repo.NewOverheadRepo(txManager), txManager),
		lossRates:   lossrate.NewService(catalog_repo.NewLossRateRepo(txManager), txManager),
		formats:     salesformat.NewService(catalog_repo.NewSalesFormatRepo(txManager), txManager),
		promotions:  promotion.NewService(catalog_repo.NewPromotionRepo(txManager), txManager),
		purchases:   purchase.NewService(record_repo.NewPurchaseRepo(txManager), txManager),
	}

	if err := s.run(ctx); err != nil {
		log.Fatalw("seeding failed", "error", err)
	}

	// Derive every stored price from the seeded inputs in one pass.
	loader := &propagation.Loader{
		Ingredients: catalog_repo.NewIngredientRepo(txManager),
		Purchases:   record_repo.NewPurchaseRepo(txManager),
		Recipes:     catalog_repo.NewRecipeRepo(txManager),
		Packaging:   catalog_repo.NewPackagingRepo(txManager),
		Overheads:   catalog_repo.NewOverheadRepo(txManager),
		LossRates:   catalog_repo.NewLossRateRepo(txManager),
		Formats:     catalog_repo.NewSalesFormatRepo(txManager),
	}
	store := &catalog_repo.DerivedStore{
		Ingredients: catalog_repo.NewIngredientRepo(txManager),
		Recipes:     catalog_repo.NewRecipeRepo(txManager),
		Formats:     catalog_repo.NewSalesFormatRepo(txManager),
	}
	if err := pricing.NewService(loader, store, txManager).Init(ctx); err != nil {
		log.Fatalw("initial cost cascade failed", "error", err)
	}

	log.Info("seeding completed successfully")
}

type seeder struct {
	log *logger.Logger

	ingredients *ingredient.Service
	recipes     *recipe.Service
	packaging   *packaging.Service
	overheads   *overhead.Service
	lossRates   *lossrate.Service
	formats     *salesformat.Service
	promotions  *promotion.Service
	purchases   *purchase.Service
}

func (s *seeder) run(ctx context.Context) error {
	flour, err := s.seedIngredient(ctx,
		ingredient.New("ING-FLOUR-T55", "Farine de blé T55", ingredient.CategoryFlour, measure.Kilogram),
		[]*purchase.Record{
			purchase.New(id.Nil(), "Moulin Dupont", decimal.NewFromInt(5), measure.Kilogram, types.MustMoney("4.50"), daysAgo(21)),
			purchase.New(id.Nil(), "Grands Moulins", decimal.NewFromInt(5), measure.Kilogram, types.MustMoney("4.80"), daysAgo(7)),
		})
	if err != nil {
		return err
	}

	chocolate, err := s.seedIngredient(ctx,
		ingredient.New("ING-CHOC-64", "Chocolat noir 64%", ingredient.CategoryChocolate, measure.Kilogram),
		[]*purchase.Record{
			purchase.New(id.Nil(), "Chocolaterie Morel", decimal.NewFromInt(2), measure.Kilogram, types.MustMoney("18.90"), daysAgo(14)),
		})
	if err != nil {
		return err
	}

	butter, err := s.seedIngredient(ctx,
		ingredient.New("ING-BUTTER", "Beurre doux AOP", ingredient.CategoryDairy, measure.Kilogram),
		[]*purchase.Record{
			purchase.New(id.Nil(), "Laiterie Bernard", decimal.NewFromInt(1), measure.Kilogram, types.MustMoney("8.40"), daysAgo(10)),
		})
	if err != nil {
		return err
	}

	sugar, err := s.seedIngredient(ctx,
		ingredient.New("ING-SUGAR", "Sucre blond de canne", ingredient.CategorySugar, measure.Kilogram),
		[]*purchase.Record{
			purchase.New(id.Nil(), "Grossiste Sud", decimal.NewFromInt(5), measure.Kilogram, types.MustMoney("6.20"), daysAgo(30)),
		})
	if err != nil {
		return err
	}

	cookieRecipe := recipe.New("RCP-COOKIE-CHOC", "Cookie chocolat", recipe.LevelStandard, 20)
	cookieRecipe.OvenEnergyCost = types.MustMoney("0.80")
	cookieRecipe.Lines = []recipe.Line{
		{IngredientID: flour.ID, Quantity: decimal.RequireFromString("0.3"), Unit: measure.Kilogram},
		{IngredientID: chocolate.ID, Quantity: decimal.RequireFromString("0.2"), Unit: measure.Kilogram},
		{IngredientID: butter.ID, Quantity: decimal.RequireFromString("0.15"), Unit: measure.Kilogram},
		{IngredientID: sugar.ID, Quantity: decimal.RequireFromString("0.15"), Unit: measure.Kilogram},
	}
	cookieRecipe, err = s.seedRecipe(ctx, cookieRecipe)
	if err != nil {
		return err
	}

	bag6 := packaging.New("PKG-BAG-6", "Sachet kraft 6 cookies", packaging.TypeBag, 6, types.MustMoney("1.20"))
	bag6, err = s.seedPackaging(ctx, bag6)
	if err != nil {
		return err
	}

	box12 := packaging.New("PKG-BOX-12", "Boîte carton 12 cookies", packaging.TypeBox, 12, types.MustMoney("2.10"))
	box12.ExtrasCost = types.MustMoney("0.30")
	box12.ExtrasNote = "ruban et étiquette"
	box12, err = s.seedPackaging(ctx, box12)
	if err != nil {
		return err
	}

	charges := overhead.New("CHG-ATELIER", "Charges mensuelles atelier", overhead.PeriodMonthly, overhead.AllocPerUnit)
	charges.Components = []overhead.Component{
		{Kind: overhead.ComponentRent, Amount: types.MustMoney("400")},
		{Kind: overhead.ComponentEnergy, Amount: types.MustMoney("90")},
		{Kind: overhead.ComponentInsurance, Amount: types.MustMoney("35")},
	}
	charges.UnitsProduced = decimal.NewFromInt(1200)
	charges, err = s.seedOverhead(ctx, charges)
	if err != nil {
		return err
	}

	if err := s.seedLossRate(ctx,
		lossrate.New("LOSS-BAKING", "Casse cuisson", lossrate.LossBaking, types.MustMoney("3"), lossrate.StageProduction),
	); err != nil {
		return err
	}

	pack6 := salesformat.New("FMT-PACK-6", "Pack 6 cookies", cookieRecipe.ID, bag6.ID, 6, types.MustMoney("40"))
	pack6.ChargeIDs = []id.ID{charges.ID}
	if _, err := s.seedFormat(ctx, pack6); err != nil {
		return err
	}

	pack12 := salesformat.New("FMT-PACK-12", "Pack 12 cookies", cookieRecipe.ID, box12.ID, 12, types.MustMoney("45"))
	pack12.Channel = salesformat.ChannelMarket
	pack12.ChargeIDs = []id.ID{charges.ID}
	pack12, err = s.seedFormat(ctx, pack12)
	if err != nil {
		return err
	}

	launch := promotion.New("PROMO-LAUNCH", "Lancement pack 12", pack12.ID, promotion.DiscountPercent, types.MustMoney("10"))
	launch.ValidFrom = time.Now().UTC()
	launch.ValidTo = time.Now().UTC().AddDate(0, 1, 0)
	return s.seedPromotion(ctx, launch)
}

// seedIngredient creates the ingredient and its purchase history unless the
// code already exists; an existing ingredient keeps its current history.
func (s *seeder) seedIngredient(ctx context.Context, ing *ingredient.Ingredient, records []*purchase.Record) (*ingredient.Ingredient, error) {
	existing, err := s.ingredients.GetByCode(ctx, ing.Code)
	if err == nil {
		s.log.Infow("ingredient already exists, skipping", "code", ing.Code)
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.ingredients.Create(ctx, ing); err != nil {
		return nil, err
	}
	s.log.Infow("ingredient created", "code", ing.Code, "name", ing.Name)

	for _, record := range records {
		record.IngredientID = ing.ID
		if _, err := s.purchases.Create(ctx, record); err != nil {
			return nil, err
		}
		s.log.Infow("purchase recorded",
			"ingredient", ing.Code,
			"supplier", record.Supplier,
			"total_price", record.TotalPrice,
		)
	}

	return ing, nil
}

func (s *seeder) seedRecipe(ctx context.Context, r *recipe.Recipe) (*recipe.Recipe, error) {
	existing, err := s.recipes.GetByCode(ctx, r.Code)
	if err == nil {
		s.log.Infow("recipe already exists, skipping", "code", r.Code)
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.recipes.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Infow("recipe created", "code", r.Code, "units_per_batch", r.UnitsPerBatch)
	return r, nil
}

func (s *seeder) seedPackaging(ctx context.Context, p *packaging.Packaging) (*packaging.Packaging, error) {
	existing, err := s.packaging.GetByCode(ctx, p.Code)
	if err == nil {
		s.log.Infow("packaging already exists, skipping", "code", p.Code)
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.packaging.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Infow("packaging created", "code", p.Code, "capacity", p.Capacity)
	return p, nil
}

func (s *seeder) seedOverhead(ctx context.Context, c *overhead.Charges) (*overhead.Charges, error) {
	existing, err := s.overheads.GetByCode(ctx, c.Code)
	if err == nil {
		s.log.Infow("overhead charges already exist, skipping", "code", c.Code)
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.overheads.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Infow("overhead charges created", "code", c.Code, "total", c.TotalCharges())
	return c, nil
}

func (s *seeder) seedLossRate(ctx context.Context, l *lossrate.LossRate) error {
	_, err := s.lossRates.GetByCode(ctx, l.Code)
	if err == nil {
		s.log.Infow("loss rate already exists, skipping", "code", l.Code)
		return nil
	}
	if !apperror.IsNotFound(err) {
		return err
	}

	if err := s.lossRates.Create(ctx, l); err != nil {
		return err
	}
	s.log.Infow("loss rate created", "code", l.Code, "percent", l.Percent)
	return nil
}

func (s *seeder) seedFormat(ctx context.Context, f *salesformat.Format) (*salesformat.Format, error) {
	existing, err := s.formats.GetByCode(ctx, f.Code)
	if err == nil {
		s.log.Infow("sales format already exists, skipping", "code", f.Code)
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.formats.Create(ctx, f); err != nil {
		return nil, err
	}
	s.log.Infow("sales format created", "code", f.Code, "quantity", f.Quantity)
	return f, nil
}

func (s *seeder) seedPromotion(ctx context.Context, p *promotion.Promotion) error {
	_, err := s.promotions.GetByCode(ctx, p.Code)
	if err == nil {
		s.log.Infow("promotion already exists, skipping", "code", p.Code)
		return nil
	}
	if !apperror.IsNotFound(err) {
		return err
	}

	if err := s.promotions.Create(ctx, p); err != nil {
		return err
	}
	s.log.Infow("promotion created", "code", p.Code, "type", p.Type)
	return nil
}

func daysAgo(n int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -n)
}
