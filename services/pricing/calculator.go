// File: services/pricing/calculator.go
package pricing

import (
	"math"
	"time"

	"notarius/models"
	"notarius/utils"

	"go.uber.org/zap"
)

// Config carries the surcharge and promotion knobs. Resolved once from
// application config at startup.
type Config struct {
	EveningCutoffHour int
	WeekendSurcharge  float64
	EveningSurcharge  float64
	RushWindow        time.Duration
	RushSurcharge     float64
	MaxPromoDiscount  float64
}

// Calculate produces the itemized price breakdown for a booking request.
// Pure: identical inputs (including now) always yield an identical
// breakdown. Line items appear in fixed order: base fee, travel fee,
// surcharges, promotion.
func Calculate(
	profile *models.ServiceProfile,
	dist models.DistanceResult,
	requestedAt time.Time,
	now time.Time,
	promo *models.Promotion,
	cfg Config,
) models.PriceBreakdown {
	breakdown := models.PriceBreakdown{
		DistanceSource: dist.Source,
		DistanceMiles:  dist.DistanceMiles,
	}

	addItem := func(label string, amount float64, isDiscount bool) {
		breakdown.Items = append(breakdown.Items, models.LineItem{
			Label:      label,
			Amount:     amount,
			IsDiscount: isDiscount,
		})
	}

	// 1. Base service fee.
	addItem(models.LineBaseService, profile.BasePrice, false)

	// 2. Travel tier fee.
	if fee := TravelFee(profile, dist.DistanceMiles); fee > 0 {
		addItem(models.LineTravelFee, fee, false)
	}

	// 3. Time-based surcharges; each stacks as its own line item.
	if isWeekend(requestedAt) && cfg.WeekendSurcharge > 0 {
		addItem(models.LineWeekendSurcharge, cfg.WeekendSurcharge, false)
	}
	if requestedAt.Hour() >= cfg.EveningCutoffHour && cfg.EveningSurcharge > 0 {
		addItem(models.LineEveningSurcharge, cfg.EveningSurcharge, false)
	}
	if cfg.RushWindow > 0 && cfg.RushSurcharge > 0 &&
		requestedAt.After(now) && requestedAt.Sub(now) <= cfg.RushWindow {
		addItem(models.LineRushSurcharge, cfg.RushSurcharge, false)
	}

	// 4. Promotion, capped; invalid codes degrade to "not applied".
	subtotal := sumItems(breakdown.Items)
	discount, applied, note := ApplyPromotion(promo, subtotal, now, cfg.MaxPromoDiscount)
	breakdown.PromotionApplied = applied
	breakdown.PromotionNote = note
	if applied && discount > 0 {
		addItem(models.LinePromotion, -discount, true)
	}

	total := sumItems(breakdown.Items)
	if total < 0 {
		// Floored totals are worth noticing but they are not errors.
		utils.GetLogger().Info("price total floored at zero",
			zap.String("serviceType", profile.Type),
			zap.Float64("rawTotal", total))
		total = 0
	}
	breakdown.Total = round2(total)
	return breakdown
}

// TravelFee returns the travel charge for a trip distance: zero within the
// included radius, the matching tier fee inside the tier table, and the
// last tier's fee plus per-mile overage beyond it.
func TravelFee(profile *models.ServiceProfile, distanceMiles float64) float64 {
	if distanceMiles <= profile.IncludedRadiusMiles {
		return 0
	}
	for _, tier := range profile.TravelTiers {
		if distanceMiles <= tier.UpperBoundMiles {
			return tier.Fee
		}
	}
	if len(profile.TravelTiers) == 0 {
		return 0
	}
	last := profile.TravelTiers[len(profile.TravelTiers)-1]
	overage := distanceMiles - last.UpperBoundMiles
	return last.Fee + overage*profile.OverageRatePerMile
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

func sumItems(items []models.LineItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Amount
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
