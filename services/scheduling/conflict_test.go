package scheduling

import (
	"testing"
	"time"

	"notarius/models"

	"github.com/stretchr/testify/assert"
)

func mkSlot(t *testing.T, hour, minute int) models.Slot {
	t.Helper()
	start := time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
	return models.Slot{
		Start:       start,
		End:         start.Add(time.Hour),
		ServiceType: "STANDARD_NOTARY",
		Available:   true,
	}
}

func TestFilterConflictsRemovesOverlaps(t *testing.T) {
	slots := []models.Slot{
		mkSlot(t, 9, 0),
		mkSlot(t, 10, 0),
		mkSlot(t, 11, 0),
		mkSlot(t, 13, 0),
	}
	existing := []models.ExistingBooking{
		{Start: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), ServiceType: "STANDARD_NOTARY", DurationMinutes: 60},
	}

	// 15 minute buffer: the booking blocks [9:45, 11:15), so the 9:00
	// slot (ends 10:00) and 11:00 slot (starts 11:00) both collide.
	out := FilterConflicts(slots, existing, 15)

	starts := make([]int, 0, len(out))
	for _, s := range out {
		starts = append(starts, s.Start.Hour())
	}
	assert.Equal(t, []int{13}, starts)
}

func TestFilterConflictsZeroBufferAllowsAdjacent(t *testing.T) {
	slots := []models.Slot{mkSlot(t, 9, 0), mkSlot(t, 11, 0)}
	existing := []models.ExistingBooking{
		{Start: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), ServiceType: "STANDARD_NOTARY", DurationMinutes: 60},
	}

	// Back-to-back intervals do not intersect when the buffer is zero.
	out := FilterConflicts(slots, existing, 0)
	assert.Len(t, out, 2)
}

func TestFilterConflictsNoBookings(t *testing.T) {
	slots := []models.Slot{mkSlot(t, 9, 0), mkSlot(t, 9, 30)}
	out := FilterConflicts(slots, nil, 15)
	assert.Equal(t, slots, out)
}

func TestFilterConflictsNeverReturnsOverlappingSlot(t *testing.T) {
	// Property check across a full day of candidates against several
	// bookings: no surviving slot may intersect a buffered booking.
	var slots []models.Slot
	for h := 8; h < 18; h++ {
		slots = append(slots, mkSlot(t, h, 0), mkSlot(t, h, 30))
	}
	existing := []models.ExistingBooking{
		{Start: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), DurationMinutes: 60},
		{Start: time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC), DurationMinutes: 90},
		{Start: time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC), DurationMinutes: 30},
	}
	const buffer = 15 * time.Minute

	out := FilterConflicts(slots, existing, 15)
	for _, s := range out {
		for _, b := range existing {
			blockedStart := b.Start.Add(-buffer)
			blockedEnd := b.End().Add(buffer)
			overlap := s.Start.Before(blockedEnd) && s.End.After(blockedStart)
			assert.False(t, overlap,
				"slot %s-%s overlaps booking %s", s.Start, s.End, b.Start)
		}
	}
}
