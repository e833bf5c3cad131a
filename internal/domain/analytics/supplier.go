package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fournil/internal/core/id"
	"fournil/internal/core/measure"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/domain/records/purchase"
)

// SupplierStats aggregates one supplier's history for one ingredient.
type SupplierStats struct {
	Supplier string `json:"supplier"`

	// AvgUnitPrice is total paid / total quantity, in the ingredient's
	// purchase unit.
	AvgUnitPrice types.Money `json:"avgUnitPrice"`

	PurchaseCount int       `json:"purchaseCount"`
	LastPurchase  time.Time `json:"lastPurchase"`

	// ReliabilityScore is 0..100, half from purchase frequency and half
	// from recency of the latest purchase.
	ReliabilityScore decimal.Decimal `json:"reliabilityScore"`
}

// SupplierComparison ranks the suppliers of one ingredient.
type SupplierComparison struct {
	IngredientID   id.ID  `json:"ingredientId"`
	IngredientCode string `json:"ingredientCode"`
	IngredientName string `json:"ingredientName"`

	// Suppliers sorted by average unit price ascending.
	Suppliers []SupplierStats `json:"suppliers"`

	BestSupplier string `json:"bestSupplier"`

	// EstimatedAnnualSavings is (second best - best average price) x the
	// estimated annual consumption extrapolated from the purchase history.
	EstimatedAnnualSavings types.Money `json:"estimatedAnnualSavings"`
}

const (
	reliabilityFullFreq    = 10  // purchases at which the frequency half maxes out
	reliabilityRecentDays  = 30  // purchases this recent score the full recency half
	reliabilityHorizonDays = 365 // recency decays linearly to zero here
)

// CompareSuppliers groups the purchase history of each ingredient by
// supplier and ranks suppliers by average unit price. Ingredients without
// purchases are skipped; cross-class purchase records fail the whole
// comparison since averages over mixed units are meaningless.
//
// The clock parameter anchors the recency half of the reliability score.
func CompareSuppliers(ingredients []*ingredient.Ingredient, purchases []*purchase.Record, now time.Time) ([]SupplierComparison, error) {
	byIngredient := make(map[id.ID][]*purchase.Record)
	for _, rec := range purchases {
		byIngredient[rec.IngredientID] = append(byIngredient[rec.IngredientID], rec)
	}

	var out []SupplierComparison
	for _, ing := range ingredients {
		if ing.DeletionMark {
			continue
		}
		history := byIngredient[ing.ID]
		if len(history) == 0 {
			continue
		}

		cmp, err := compareIngredientSuppliers(ing, history, now)
		if err != nil {
			return nil, err
		}
		out = append(out, cmp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].IngredientCode < out[j].IngredientCode })
	return out, nil
}

type supplierAccum struct {
	qty   decimal.Decimal
	paid  decimal.Decimal
	count int
	last  time.Time
}

func compareIngredientSuppliers(ing *ingredient.Ingredient, history []*purchase.Record, now time.Time) (SupplierComparison, error) {
	accums := make(map[string]*supplierAccum)
	totalQty := decimal.Zero
	first, last := history[0].PurchaseDate, history[0].PurchaseDate

	for _, rec := range history {
		qty, err := measure.Convert(rec.Quantity, rec.Unit, ing.PurchaseUnit)
		if err != nil {
			return SupplierComparison{}, err
		}

		acc := accums[rec.Supplier]
		if acc == nil {
			acc = &supplierAccum{}
			accums[rec.Supplier] = acc
		}
		acc.qty = acc.qty.Add(qty)
		acc.paid = acc.paid.Add(rec.TotalPrice)
		acc.count++
		if rec.PurchaseDate.After(acc.last) {
			acc.last = rec.PurchaseDate
		}

		totalQty = totalQty.Add(qty)
		if rec.PurchaseDate.Before(first) {
			first = rec.PurchaseDate
		}
		if rec.PurchaseDate.After(last) {
			last = rec.PurchaseDate
		}
	}

	stats := make([]SupplierStats, 0, len(accums))
	for name, acc := range accums {
		if !acc.qty.IsPositive() {
			continue
		}
		stats = append(stats, SupplierStats{
			Supplier:         name,
			AvgUnitPrice:     acc.paid.Div(acc.qty),
			PurchaseCount:    acc.count,
			LastPurchase:     acc.last,
			ReliabilityScore: reliabilityScore(acc.count, acc.last, now),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].AvgUnitPrice.Equal(stats[j].AvgUnitPrice) {
			return stats[i].AvgUnitPrice.LessThan(stats[j].AvgUnitPrice)
		}
		return stats[i].Supplier < stats[j].Supplier
	})

	cmp := SupplierComparison{
		IngredientID:   ing.ID,
		IngredientCode: ing.Code,
		IngredientName: ing.Name,
		Suppliers:      stats,
	}
	if len(stats) > 0 {
		cmp.BestSupplier = stats[0].Supplier
	}
	if len(stats) > 1 {
		spread := stats[1].AvgUnitPrice.Sub(stats[0].AvgUnitPrice)
		cmp.EstimatedAnnualSavings = spread.Mul(annualConsumption(totalQty, first, last))
	} else {
		cmp.EstimatedAnnualSavings = decimal.Zero
	}
	return cmp, nil
}

// reliabilityScore is 0..100: up to 50 points for purchase frequency
// (maxing out at 10 purchases) and up to 50 for recency, decaying linearly
// from 30 days old to nothing at a year.
func reliabilityScore(count int, last, now time.Time) decimal.Decimal {
	freq := count
	if freq > reliabilityFullFreq {
		freq = reliabilityFullFreq
	}
	score := decimal.NewFromInt(int64(freq * 50 / reliabilityFullFreq))

	ageDays := int64(now.Sub(last).Hours() / 24)
	switch {
	case ageDays <= reliabilityRecentDays:
		score = score.Add(decimal.NewFromInt(50))
	case ageDays < reliabilityHorizonDays:
		remaining := reliabilityHorizonDays - ageDays
		span := int64(reliabilityHorizonDays - reliabilityRecentDays)
		score = score.Add(decimal.NewFromInt(remaining * 50).Div(decimal.NewFromInt(span)).Round(0))
	}
	return score
}

// annualConsumption extrapolates yearly usage from the observed purchase
// window. Histories shorter than a month are treated as one month of
// consumption rather than dividing by a tiny day span.
func annualConsumption(totalQty decimal.Decimal, first, last time.Time) decimal.Decimal {
	days := int64(last.Sub(first).Hours() / 24)
	if days < 30 {
		return totalQty.Mul(decimal.NewFromInt(12))
	}
	return totalQty.Div(decimal.NewFromInt(days)).Mul(decimal.NewFromInt(365))
}
