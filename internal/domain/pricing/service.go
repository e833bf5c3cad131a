// Package pricing orchestrates the cost cascade: it owns the graph
// snapshot, runs the propagation engine after every relevant mutation and
// persists the derived values the engine computed.
package pricing

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/id"
	"fournil/internal/core/tx"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/domain/catalogs/overhead"
	"fournil/internal/domain/catalogs/recipe"
	"fournil/internal/domain/catalogs/salesformat"
	"fournil/internal/domain/propagation"
	"fournil/internal/domain/records/purchase"
	"fournil/pkg/logger"
)

// Store persists derived fields only. Operator-owned fields never pass
// through here, so no optimistic-lock version bump happens on reprice.
type Store interface {
	UpdateIngredientDerived(ctx context.Context, ing *ingredient.Ingredient) error
	UpdateRecipeDerived(ctx context.Context, r *recipe.Recipe) error
	UpdateFormatsDerived(ctx context.Context, formats []*salesformat.Format) error
}

// Service serializes recompute passes. The engine works on an exclusive
// in-memory snapshot; one mutex covers reload, recompute and persist, so
// concurrent HTTP mutations see consistent derived values.
type Service struct {
	mu sync.Mutex

	loader    *propagation.Loader
	store     Store
	txManager tx.Manager

	graph  *propagation.Graph
	engine *propagation.Engine
}

// NewService creates the pricing service.
func NewService(loader *propagation.Loader, store Store, txManager tx.Manager) *Service {
	return &Service{
		loader:    loader,
		store:     store,
		txManager: txManager,
	}
}

// Init loads the snapshot and re-derives everything from scratch, healing
// any drift between stored derived values and their inputs.
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		return err
	}

	cs, err := s.engine.RecomputeAll(ctx)
	if err != nil {
		return err
	}

	if err := s.persist(ctx, cs); err != nil {
		return err
	}

	logger.Info(ctx, "initial cost cascade complete",
		"ingredients", len(cs.Ingredients),
		"recipes", len(cs.Recipes),
		"formats", len(cs.Formats))
	return nil
}

// EntityChanged runs one propagation pass for a persisted mutation and
// returns the formats it repriced. The snapshot is reloaded first so the
// pass sees the mutation itself.
func (s *Service) EntityChanged(ctx context.Context, changed id.ID, kind propagation.EntityKind) ([]*salesformat.Format, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		return nil, err
	}

	cs, err := s.engine.Recompute(ctx, changed, kind)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, cs); err != nil {
		return nil, err
	}

	return cs.Formats, nil
}

// FormatPricing returns the current derived breakdown of one format from
// the live snapshot.
func (s *Service) FormatPricing(ctx context.Context, formatID id.ID) (*salesformat.Format, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	f, ok := s.graph.Formats[formatID]
	if !ok || f.DeletionMark {
		return nil, apperror.NewNotFound("sales format", formatID.String())
	}
	return f, nil
}

// ActiveFormats returns the snapshot's live formats sorted by code.
// The returned structs belong to the snapshot current at call time; a
// later mutation builds a fresh snapshot, so they are stable to read.
func (s *Service) ActiveFormats(ctx context.Context) ([]*salesformat.Format, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	formats := make([]*salesformat.Format, 0, len(s.graph.Formats))
	for _, f := range s.graph.Formats {
		if f.DeletionMark {
			continue
		}
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i].Code < formats[j].Code })
	return formats, nil
}

// ActiveIngredients returns the snapshot's live ingredients sorted by code.
func (s *Service) ActiveIngredients(ctx context.Context) ([]*ingredient.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	ingredients := make([]*ingredient.Ingredient, 0, len(s.graph.Ingredients))
	for _, ing := range s.graph.Ingredients {
		if ing.DeletionMark {
			continue
		}
		ingredients = append(ingredients, ing)
	}
	sort.Slice(ingredients, func(i, j int) bool { return ingredients[i].Code < ingredients[j].Code })
	return ingredients, nil
}

// PurchaseHistory returns every purchase record in the snapshot.
func (s *Service) PurchaseHistory(ctx context.Context) ([]*purchase.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	var records []*purchase.Record
	for _, history := range s.graph.Purchases {
		records = append(records, history...)
	}
	return records, nil
}

// MonthlyFixedCharges sums the snapshot's periodic overhead charges on a
// monthly basis: monthly records at face value, annual divided by twelve.
// Per-batch charges vary with production and are not fixed costs.
func (s *Service) MonthlyFixedCharges(ctx context.Context) (types.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, charges := range s.graph.Charges {
		if charges.DeletionMark {
			continue
		}
		switch charges.Period {
		case overhead.PeriodMonthly:
			total = total.Add(charges.TotalCharges())
		case overhead.PeriodAnnual:
			total = total.Add(charges.TotalCharges().Div(decimal.NewFromInt(12)))
		}
	}
	return total, nil
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.graph != nil {
		return nil
	}
	return s.reload(ctx)
}

func (s *Service) reload(ctx context.Context) error {
	g, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}
	s.graph = g
	s.engine = propagation.NewEngine(g)
	return nil
}

// persist writes the whole changeset in one transaction: a pass is either
// fully visible or not at all.
func (s *Service) persist(ctx context.Context, cs *propagation.Changeset) error {
	if cs.Empty() {
		return nil
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, ing := range cs.Ingredients {
			if err := s.store.UpdateIngredientDerived(ctx, ing); err != nil {
				return err
			}
		}
		for _, r := range cs.Recipes {
			if err := s.store.UpdateRecipeDerived(ctx, r); err != nil {
				return err
			}
		}
		return s.store.UpdateFormatsDerived(ctx, cs.Formats)
	})
}
