// File: services/pricing/promotion.go
package pricing

import (
	"time"

	"notarius/models"
)

// PromotionSource looks up active promotions by code. The engine ships a
// static in-memory source; a CRM-backed one can replace it without
// touching the calculator.
type PromotionSource interface {
	Find(code string) (*models.Promotion, bool)
}

// StaticPromotions is a fixed code table.
type StaticPromotions struct {
	promos map[string]*models.Promotion
}

func NewStaticPromotions(promos []*models.Promotion) *StaticPromotions {
	m := make(map[string]*models.Promotion, len(promos))
	for _, p := range promos {
		m[p.Code] = p
	}
	return &StaticPromotions{promos: m}
}

func (s *StaticPromotions) Find(code string) (*models.Promotion, bool) {
	p, ok := s.promos[code]
	return p, ok
}

// ApplyPromotion validates a promotion against the subtotal and returns
// the discount to apply. Invalid or expired promotions are reported as
// not applied, never as errors.
func ApplyPromotion(promo *models.Promotion, subtotal float64, now time.Time, maxDiscount float64) (discount float64, applied bool, note string) {
	if promo == nil {
		return 0, false, ""
	}
	if !promo.ExpiresAt.IsZero() && now.After(promo.ExpiresAt) {
		return 0, false, "promotion expired"
	}
	if promo.UsesRemaining <= 0 {
		return 0, false, "promotion fully redeemed"
	}

	switch promo.Kind {
	case models.PromoFixed:
		discount = promo.Amount
	case models.PromoPercent:
		discount = subtotal * promo.Amount / 100
	default:
		return 0, false, "unrecognized promotion type"
	}

	if maxDiscount > 0 && discount > maxDiscount {
		discount = maxDiscount
	}
	return discount, true, ""
}
