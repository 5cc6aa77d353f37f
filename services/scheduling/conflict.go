// File: services/scheduling/conflict.go
package scheduling

import (
	"time"

	"notarius/models"
)

// FilterConflicts removes candidate slots whose [start, end) interval
// intersects any existing booking's interval extended by the symmetric
// buffer. Pure and side-effect free.
func FilterConflicts(slots []models.Slot, existing []models.ExistingBooking, bufferMinutes int) []models.Slot {
	if len(existing) == 0 {
		return slots
	}

	buffer := time.Duration(bufferMinutes) * time.Minute
	out := make([]models.Slot, 0, len(slots))

	for _, slot := range slots {
		if !overlapsAny(slot, existing, buffer) {
			out = append(out, slot)
		}
	}
	return out
}

func overlapsAny(slot models.Slot, existing []models.ExistingBooking, buffer time.Duration) bool {
	for _, b := range existing {
		bookedStart := b.Start.Add(-buffer)
		bookedEnd := b.End().Add(buffer)
		if slot.Start.Before(bookedEnd) && slot.End.After(bookedStart) {
			return true
		}
	}
	return false
}
