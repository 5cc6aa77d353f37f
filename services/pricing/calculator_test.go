package pricing

import (
	"testing"
	"time"

	"notarius/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardProfile() *models.ServiceProfile {
	return &models.ServiceProfile{
		Type:                "STANDARD_NOTARY",
		BasePrice:           75,
		IncludedRadiusMiles: 20,
		TravelTiers: []models.TravelTier{
			{UpperBoundMiles: 30, Fee: 25},
			{UpperBoundMiles: 40, Fee: 45},
			{UpperBoundMiles: 50, Fee: 65},
		},
		OverageRatePerMile: 2.0,
	}
}

func testConfig() Config {
	return Config{
		EveningCutoffHour: 18,
		WeekendSurcharge:  25,
		EveningSurcharge:  20,
		RushWindow:        4 * time.Hour,
		RushSurcharge:     30,
		MaxPromoDiscount:  50,
	}
}

// Tuesday morning, far enough out that no surcharge applies.
var (
	weekdayMorning = time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	quoteTime      = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
)

func distAt(miles float64) models.DistanceResult {
	return models.DistanceResult{
		DistanceMiles:   miles,
		DurationMinutes: miles * 2,
		Source:          models.SourceRouting,
	}
}

func TestCalculateTierExample(t *testing.T) {
	// Worked example: base 75, 35 miles against the tier table gives a 45
	// travel fee, total 120.
	b := Calculate(standardProfile(), distAt(35), weekdayMorning, quoteTime, nil, testConfig())

	require.Len(t, b.Items, 2)
	assert.Equal(t, models.LineBaseService, b.Items[0].Label)
	assert.Equal(t, 75.0, b.Items[0].Amount)
	assert.Equal(t, models.LineTravelFee, b.Items[1].Label)
	assert.Equal(t, 45.0, b.Items[1].Amount)
	assert.Equal(t, 120.0, b.Total)
	assert.Equal(t, models.SourceRouting, b.DistanceSource)
}

func TestTravelFeeWithinIncludedRadius(t *testing.T) {
	p := standardProfile()
	assert.Zero(t, TravelFee(p, 5))
	assert.Zero(t, TravelFee(p, 20))
	assert.Equal(t, 25.0, TravelFee(p, 20.1))
}

func TestTravelFeeMonotonic(t *testing.T) {
	p := standardProfile()
	prev := 0.0
	for miles := 1.0; miles <= 80; miles += 0.5 {
		fee := TravelFee(p, miles)
		assert.GreaterOrEqual(t, fee, prev, "fee must not decrease with distance (at %v miles)", miles)
		prev = fee
	}
}

func TestTravelFeeBeyondLastTier(t *testing.T) {
	p := standardProfile()
	// Last tier bound 50 at fee 65, then $2/mile overage.
	assert.Equal(t, 65.0, TravelFee(p, 50))
	assert.InDelta(t, 65+10*2, TravelFee(p, 60), 0.001)
}

func TestCalculateDeterministic(t *testing.T) {
	promo := &models.Promotion{
		Code: "SUMMER10", Kind: models.PromoPercent, Amount: 10,
		ExpiresAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), UsesRemaining: 5,
	}
	a := Calculate(standardProfile(), distAt(35), weekdayMorning, quoteTime, promo, testConfig())
	b := Calculate(standardProfile(), distAt(35), weekdayMorning, quoteTime, promo, testConfig())
	assert.Equal(t, a, b)
}

func TestCalculateWeekendAndEveningStack(t *testing.T) {
	// Saturday 19:00: weekend and evening surcharges stack as separate
	// line items.
	saturdayEvening := time.Date(2025, 6, 7, 19, 0, 0, 0, time.UTC)
	b := Calculate(standardProfile(), distAt(10), saturdayEvening, quoteTime, nil, testConfig())

	labels := make([]string, len(b.Items))
	for i, it := range b.Items {
		labels[i] = it.Label
	}
	assert.Equal(t, []string{models.LineBaseService, models.LineWeekendSurcharge, models.LineEveningSurcharge}, labels)
	assert.Equal(t, 120.0, b.Total)
}

func TestCalculateRushWindow(t *testing.T) {
	now := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	soon := now.Add(2 * time.Hour)
	b := Calculate(standardProfile(), distAt(10), soon, now, nil, testConfig())

	var found bool
	for _, it := range b.Items {
		if it.Label == models.LineRushSurcharge {
			found = true
			assert.Equal(t, 30.0, it.Amount)
		}
	}
	assert.True(t, found, "same-day surcharge expected inside rush window")
}

func TestCalculatePromotionFixed(t *testing.T) {
	promo := &models.Promotion{
		Code: "FLAT20", Kind: models.PromoFixed, Amount: 20,
		ExpiresAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), UsesRemaining: 1,
	}
	b := Calculate(standardProfile(), distAt(10), weekdayMorning, quoteTime, promo, testConfig())

	require.True(t, b.PromotionApplied)
	last := b.Items[len(b.Items)-1]
	assert.True(t, last.IsDiscount)
	assert.Equal(t, -20.0, last.Amount)
	assert.Equal(t, 55.0, b.Total)
}

func TestCalculatePromotionCapped(t *testing.T) {
	promo := &models.Promotion{
		Code: "BIG", Kind: models.PromoPercent, Amount: 90,
		ExpiresAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), UsesRemaining: 1,
	}
	b := Calculate(standardProfile(), distAt(10), weekdayMorning, quoteTime, promo, testConfig())

	require.True(t, b.PromotionApplied)
	last := b.Items[len(b.Items)-1]
	assert.Equal(t, -50.0, last.Amount, "discount capped at configured maximum")
}

func TestCalculateExpiredPromotionIgnored(t *testing.T) {
	promo := &models.Promotion{
		Code: "OLD", Kind: models.PromoFixed, Amount: 20,
		ExpiresAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), UsesRemaining: 1,
	}
	b := Calculate(standardProfile(), distAt(10), weekdayMorning, quoteTime, promo, testConfig())

	assert.False(t, b.PromotionApplied)
	assert.Equal(t, "promotion expired", b.PromotionNote)
	assert.Equal(t, 75.0, b.Total, "expired promotion never fails the quote")
}

func TestCalculateTotalFlooredAtZero(t *testing.T) {
	cheap := &models.ServiceProfile{Type: "CHEAP", BasePrice: 10}
	promo := &models.Promotion{
		Code: "HUGE", Kind: models.PromoFixed, Amount: 40,
		ExpiresAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), UsesRemaining: 1,
	}
	cfg := testConfig()
	cfg.MaxPromoDiscount = 0 // uncapped

	b := Calculate(cheap, distAt(1), weekdayMorning, quoteTime, promo, cfg)
	assert.Equal(t, 0.0, b.Total)
}
