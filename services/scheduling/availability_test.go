package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"notarius/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	bookings []models.ExistingBooking
	err      error
}

func (s *stubLister) ListBookings(ctx context.Context, date time.Time, serviceType string) ([]models.ExistingBooking, error) {
	return s.bookings, s.err
}

type stubHolds struct {
	held map[string]bool
}

func (s *stubHolds) IsAvailable(ctx context.Context, slotKey string) bool {
	return !s.held[slotKey]
}

func newEngine(bookings []models.ExistingBooking, held map[string]bool) *AvailabilityEngine {
	if held == nil {
		held = map[string]bool{}
	}
	return &AvailabilityEngine{
		Source:        NewRuleBasedSource(testCatalog()),
		Bookings:      &stubLister{bookings: bookings},
		Holds:         &stubHolds{held: held},
		BufferMinutes: 15,
	}
}

func TestGetAvailableSlotsDropsBookedAndHeld(t *testing.T) {
	booked := []models.ExistingBooking{
		{Start: monday.Add(10 * time.Hour), ServiceType: "STANDARD_NOTARY", DurationMinutes: 60},
	}
	heldStart := monday.Add(14 * time.Hour)
	held := map[string]bool{
		models.SlotKey(heldStart, "STANDARD_NOTARY"): true,
	}

	engine := newEngine(booked, held)
	slots, err := engine.GetAvailableSlots(context.Background(), monday, "STANDARD_NOTARY")
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	const buffer = 15 * time.Minute
	for _, s := range slots {
		assert.NotEqual(t, heldStart, s.Start, "held slot must be dropped")
		for _, b := range booked {
			overlap := s.Start.Before(b.End().Add(buffer)) && s.End.After(b.Start.Add(-buffer))
			assert.False(t, overlap, "slot %s overlaps buffered booking", s.Start)
		}
	}
}

func TestGetAvailableSlotsAscendingOrder(t *testing.T) {
	engine := newEngine(nil, nil)
	slots, err := engine.GetAvailableSlots(context.Background(), monday, "STANDARD_NOTARY")
	require.NoError(t, err)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start))
	}
}

func TestGetAvailableSlotsDemandTier(t *testing.T) {
	// 15 raw slots for STANDARD_NOTARY on a Monday.
	engine := newEngine(nil, nil)
	slots, err := engine.GetAvailableSlots(context.Background(), monday, "STANDARD_NOTARY")
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, models.DemandLow, slots[0].Demand)

	// 5 of 15 booked is mid-band utilization, and the afternoon slots
	// survive the conflict filter.
	var booked []models.ExistingBooking
	for i := 0; i < 5; i++ {
		booked = append(booked, models.ExistingBooking{
			Start:           monday.Add(time.Duration(9+i) * time.Hour),
			ServiceType:     "STANDARD_NOTARY",
			DurationMinutes: 60,
		})
	}
	engine = newEngine(booked, nil)
	slots, err = engine.GetAvailableSlots(context.Background(), monday, "STANDARD_NOTARY")
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.Equal(t, models.DemandMedium, s.Demand)
	}
}

func TestGetAvailableSlotsBookingStoreDown(t *testing.T) {
	engine := newEngine(nil, nil)
	engine.Bookings = &stubLister{err: errors.New("store offline")}

	// Without the bookings snapshot the conflict filter cannot run: a
	// result could contain slots that overlap bookings that really exist
	// in the store. The request fails instead of overselling.
	slots, err := engine.GetAvailableSlots(context.Background(), monday, "STANDARD_NOTARY")
	require.Error(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlotsUnknownServiceType(t *testing.T) {
	engine := newEngine(nil, nil)
	_, err := engine.GetAvailableSlots(context.Background(), monday, "MOBILE_DJ")
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestGetAvailableSlotsInactiveDayEmpty(t *testing.T) {
	engine := newEngine(nil, nil)
	sunday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	slots, err := engine.GetAvailableSlots(context.Background(), sunday, "STANDARD_NOTARY")
	require.NoError(t, err)
	assert.Empty(t, slots)
}
