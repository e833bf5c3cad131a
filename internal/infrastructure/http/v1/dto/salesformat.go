package dto

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/id"
	"fournil/internal/domain/catalogs/salesformat"
)

// CreateFormatRequest for creating sales formats.
type CreateFormatRequest struct {
	Code            string           `json:"code"`
	Name            string           `json:"name" binding:"required"`
	RecipeID        string           `json:"recipeId" binding:"required"`
	PackagingID     string           `json:"packagingId" binding:"required"`
	Quantity        int              `json:"quantity" binding:"required"`
	TargetMarginPct decimal.Decimal  `json:"targetMarginPct"`
	PracticedPrice  *decimal.Decimal `json:"practicedPrice"`
	Channel         *string          `json:"channel"`
	ChargeIDs       []string         `json:"chargeIds"`
}

// ToEntity converts the request into a domain Format.
func (r CreateFormatRequest) ToEntity() *salesformat.Format {
	recipeID, _ := id.Parse(r.RecipeID)
	packagingID, _ := id.Parse(r.PackagingID)

	f := salesformat.New(r.Code, r.Name, recipeID, packagingID, r.Quantity, r.TargetMarginPct)
	f.PracticedPrice = r.PracticedPrice
	if r.Channel != nil {
		f.Channel = salesformat.Channel(*r.Channel)
	}
	f.ChargeIDs = parseIDs(r.ChargeIDs)
	return f
}

// UpdateFormatRequest for updating sales formats.
type UpdateFormatRequest struct {
	Code            *string          `json:"code"`
	Name            *string          `json:"name"`
	RecipeID        *string          `json:"recipeId"`
	PackagingID     *string          `json:"packagingId"`
	Quantity        *int             `json:"quantity"`
	TargetMarginPct *decimal.Decimal `json:"targetMarginPct"`
	PracticedPrice  *decimal.Decimal `json:"practicedPrice"`
	ClearPracticed  bool             `json:"clearPracticedPrice"`
	Channel         *string          `json:"channel"`
	ChargeIDs       []string         `json:"chargeIds"`
	Version         int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields onto an existing Format.
func (r UpdateFormatRequest) ApplyTo(f *salesformat.Format) {
	if r.Code != nil {
		f.Code = *r.Code
	}
	if r.Name != nil {
		f.Name = *r.Name
	}
	if r.RecipeID != nil {
		f.RecipeID, _ = id.Parse(*r.RecipeID)
	}
	if r.PackagingID != nil {
		f.PackagingID, _ = id.Parse(*r.PackagingID)
	}
	if r.Quantity != nil {
		f.Quantity = *r.Quantity
	}
	if r.TargetMarginPct != nil {
		f.TargetMarginPct = *r.TargetMarginPct
	}
	if r.PracticedPrice != nil {
		f.PracticedPrice = r.PracticedPrice
	}
	if r.ClearPracticed {
		f.PracticedPrice = nil
	}
	if r.Channel != nil {
		f.Channel = salesformat.Channel(*r.Channel)
	}
	if r.ChargeIDs != nil {
		f.ChargeIDs = parseIDs(r.ChargeIDs)
	}
	f.Version = r.Version
}

func parseIDs(raw []string) []id.ID {
	ids := make([]id.ID, 0, len(raw))
	for _, s := range raw {
		if parsed, err := id.Parse(s); err == nil {
			ids = append(ids, parsed)
		}
	}
	return ids
}

// DerivedResponse is the computed pricing breakdown of a format.
type DerivedResponse struct {
	CostCookies       decimal.Decimal `json:"costCookies"`
	CostPackaging     decimal.Decimal `json:"costPackaging"`
	CostOverhead      decimal.Decimal `json:"costOverhead"`
	CostLosses        decimal.Decimal `json:"costLosses"`
	TotalCost         decimal.Decimal `json:"totalCost"`
	RecommendedPrice  decimal.Decimal `json:"recommendedPrice"`
	EffectivePrice    decimal.Decimal `json:"effectivePrice"`
	UnitProfit        decimal.Decimal `json:"unitProfit"`
	RealizedMarginPct decimal.Decimal `json:"realizedMarginPct"`
}

func fromDerived(d salesformat.Derived) DerivedResponse {
	return DerivedResponse{
		CostCookies:       d.CostCookies,
		CostPackaging:     d.CostPackaging,
		CostOverhead:      d.CostOverhead,
		CostLosses:        d.CostLosses,
		TotalCost:         d.TotalCost,
		RecommendedPrice:  d.RecommendedPrice,
		EffectivePrice:    d.EffectivePrice,
		UnitProfit:        d.UnitProfit,
		RealizedMarginPct: d.RealizedMarginPct,
	}
}

// FormatResponse is the API representation of a sales format.
type FormatResponse struct {
	CatalogResponse
	RecipeID        string           `json:"recipeId"`
	PackagingID     string           `json:"packagingId"`
	Quantity        int              `json:"quantity"`
	TargetMarginPct decimal.Decimal  `json:"targetMarginPct"`
	PracticedPrice  *decimal.Decimal `json:"practicedPrice,omitempty"`
	Channel         string           `json:"channel"`
	ChargeIDs       []string         `json:"chargeIds"`
	Derived         DerivedResponse  `json:"derived"`
	State           string           `json:"state"`
	Incomplete      bool             `json:"incomplete"`

	// PromotedPrice is the effective price after the best currently running
	// promotion; only the pricing endpoint fills it in.
	PromotedPrice *decimal.Decimal `json:"promotedPrice,omitempty"`
}

// FromFormat creates FormatResponse from the domain entity.
func FromFormat(f *salesformat.Format) FormatResponse {
	chargeIDs := make([]string, len(f.ChargeIDs))
	for i, chargeID := range f.ChargeIDs {
		chargeIDs[i] = chargeID.String()
	}

	return FormatResponse{
		CatalogResponse: FromCatalog(f.Catalog),
		RecipeID:        f.RecipeID.String(),
		PackagingID:     f.PackagingID.String(),
		Quantity:        f.Quantity,
		TargetMarginPct: f.TargetMarginPct,
		PracticedPrice:  f.PracticedPrice,
		Channel:         string(f.Channel),
		ChargeIDs:       chargeIDs,
		Derived:         fromDerived(f.Derived),
		State:           string(f.State),
		Incomplete:      f.Incomplete,
	}
}
