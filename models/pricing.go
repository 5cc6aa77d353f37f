package models

import "time"

// Line item labels, in the fixed order they may appear in a breakdown.
const (
	LineBaseService      = "Base service fee"
	LineTravelFee        = "Travel fee"
	LineWeekendSurcharge = "Weekend surcharge"
	LineEveningSurcharge = "Evening surcharge"
	LineRushSurcharge    = "Same-day surcharge"
	LinePromotion        = "Promotional discount"
)

// LineItem is one attributable component of a quoted price.
type LineItem struct {
	Label      string  `json:"label"`
	Amount     float64 `json:"amount"`
	IsDiscount bool    `json:"isDiscount"`
}

// PriceBreakdown is the itemized result of a pricing run. Deterministic
// given the same profile, distance result, requested time and promotion.
type PriceBreakdown struct {
	Items            []LineItem     `json:"items"`
	Total            float64        `json:"total"` // sum of items, floored at zero
	DistanceSource   DistanceSource `json:"distanceSource"`
	DistanceMiles    float64        `json:"distanceMiles"`
	PromotionApplied bool           `json:"promotionApplied"`
	PromotionNote    string         `json:"promotionNote,omitempty"`
}

// PromotionKind selects fixed-amount or percentage discounts.
type PromotionKind string

const (
	PromoFixed   PromotionKind = "fixed"
	PromoPercent PromotionKind = "percent"
)

// Promotion is an active discount code.
type Promotion struct {
	Code          string        `json:"code"`
	Kind          PromotionKind `json:"kind"`
	Amount        float64       `json:"amount"` // dollars for fixed, 0-100 for percent
	ExpiresAt     time.Time     `json:"expiresAt"`
	UsesRemaining int           `json:"usesRemaining"`
}
