package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"fournil/internal/core/id"
	"fournil/internal/domain/catalogs/promotion"
)

// CreatePromotionRequest for creating promotions.
type CreatePromotionRequest struct {
	Code      string          `json:"code"`
	Name      string          `json:"name" binding:"required"`
	FormatID  string          `json:"formatId" binding:"required"`
	Type      string          `json:"type" binding:"required"`
	Value     decimal.Decimal `json:"value"`
	Threshold int             `json:"threshold"`
	ValidFrom *time.Time      `json:"validFrom"`
	ValidTo   *time.Time      `json:"validTo"`
}

// ToEntity converts the request into a domain Promotion.
func (r CreatePromotionRequest) ToEntity() *promotion.Promotion {
	formatID, _ := id.Parse(r.FormatID)

	p := promotion.New(r.Code, r.Name, formatID, promotion.DiscountType(r.Type), r.Value)
	p.Threshold = r.Threshold
	if r.ValidFrom != nil {
		p.ValidFrom = *r.ValidFrom
	}
	if r.ValidTo != nil {
		p.ValidTo = *r.ValidTo
	}
	return p
}

// UpdatePromotionRequest for updating promotions.
type UpdatePromotionRequest struct {
	Code      *string          `json:"code"`
	Name      *string          `json:"name"`
	FormatID  *string          `json:"formatId"`
	Type      *string          `json:"type"`
	Value     *decimal.Decimal `json:"value"`
	Threshold *int             `json:"threshold"`
	ValidFrom *time.Time       `json:"validFrom"`
	ValidTo   *time.Time       `json:"validTo"`
	Active    *bool            `json:"active"`
	Version   int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields onto an existing Promotion.
func (r UpdatePromotionRequest) ApplyTo(p *promotion.Promotion) {
	if r.Code != nil {
		p.Code = *r.Code
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.FormatID != nil {
		p.FormatID, _ = id.Parse(*r.FormatID)
	}
	if r.Type != nil {
		p.Type = promotion.DiscountType(*r.Type)
	}
	if r.Value != nil {
		p.Value = *r.Value
	}
	if r.Threshold != nil {
		p.Threshold = *r.Threshold
	}
	if r.ValidFrom != nil {
		p.ValidFrom = *r.ValidFrom
	}
	if r.ValidTo != nil {
		p.ValidTo = *r.ValidTo
	}
	if r.Active != nil {
		p.Active = *r.Active
	}
	p.Version = r.Version
}

// PromotionResponse is the API representation of a promotion.
type PromotionResponse struct {
	CatalogResponse
	FormatID  string          `json:"formatId"`
	Type      string          `json:"type"`
	Value     decimal.Decimal `json:"value"`
	Threshold int             `json:"threshold"`
	ValidFrom time.Time       `json:"validFrom"`
	ValidTo   time.Time       `json:"validTo"`
	Active    bool            `json:"active"`
}

// FromPromotion creates PromotionResponse from the domain entity.
func FromPromotion(p *promotion.Promotion) PromotionResponse {
	return PromotionResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		FormatID:        p.FormatID.String(),
		Type:            string(p.Type),
		Value:           p.Value,
		Threshold:       p.Threshold,
		ValidFrom:       p.ValidFrom,
		ValidTo:         p.ValidTo,
		Active:          p.Active,
	}
}
