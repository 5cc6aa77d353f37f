// File: services/scheduling/availability.go
package scheduling

import (
	"context"
	"sort"
	"time"

	"notarius/models"
	"notarius/utils"

	"go.uber.org/zap"
)

// BookingLister is the read-only view of the external booking store the
// availability pipeline needs.
type BookingLister interface {
	ListBookings(ctx context.Context, date time.Time, serviceType string) ([]models.ExistingBooking, error)
}

// HoldChecker answers whether a slot key currently carries a hold.
type HoldChecker interface {
	IsAvailable(ctx context.Context, slotKey string) bool
}

// AvailabilityEngine composes CalendarSource, conflict filtering and the
// reservation store into the final offerable slot list.
type AvailabilityEngine struct {
	Source        CalendarSource
	Bookings      BookingLister
	Holds         HoldChecker
	BufferMinutes int
}

// GetAvailableSlots returns the offerable slots for a date and service
// type, in ascending start order, annotated with a demand tier.
func (e *AvailabilityEngine) GetAvailableSlots(ctx context.Context, date time.Time, serviceType string) ([]models.Slot, error) {
	logger := utils.GetLogger()

	// The raw slot fetch and the bookings snapshot are independent reads;
	// run them concurrently.
	type rawResult struct {
		slots []models.Slot
		err   error
	}
	type bookedResult struct {
		bookings []models.ExistingBooking
		err      error
	}
	rawCh := make(chan rawResult, 1)
	bookedCh := make(chan bookedResult, 1)

	go func() {
		slots, err := e.Source.GetRawSlots(ctx, date, serviceType)
		rawCh <- rawResult{slots: slots, err: err}
	}()
	go func() {
		bookings, err := e.Bookings.ListBookings(ctx, date, serviceType)
		bookedCh <- bookedResult{bookings: bookings, err: err}
	}()

	raw := <-rawCh
	booked := <-bookedCh

	if raw.err != nil {
		if IsConfigError(raw.err) {
			logger.Error("availability request for unconfigured service type",
				zap.String("serviceType", serviceType), zap.Error(raw.err))
		}
		return nil, raw.err
	}
	if len(raw.slots) == 0 {
		return nil, nil
	}

	// Without the bookings snapshot the conflict filter cannot run, and
	// any slot returned could overlap a booking that exists in the store.
	// Fail the request rather than oversell.
	if booked.err != nil {
		logger.Error("failed to list existing bookings for conflict check",
			zap.String("serviceType", serviceType),
			zap.String("date", date.Format("2006-01-02")),
			zap.Error(booked.err))
		return nil, booked.err
	}
	existing := booked.bookings

	filtered := FilterConflicts(raw.slots, existing, e.BufferMinutes)

	tier := demandTier(len(existing), len(raw.slots))

	out := make([]models.Slot, 0, len(filtered))
	for _, slot := range filtered {
		if !e.Holds.IsAvailable(ctx, slot.Key()) {
			continue
		}
		slot.Demand = tier
		out = append(out, slot)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// demandTier buckets day utilization for display: <30% low, 30-70%
// medium, >70% high.
func demandTier(bookedCount, totalSlots int) models.DemandTier {
	if totalSlots == 0 {
		return models.DemandLow
	}
	ratio := float64(bookedCount) / float64(totalSlots)
	switch {
	case ratio < 0.3:
		return models.DemandLow
	case ratio <= 0.7:
		return models.DemandMedium
	default:
		return models.DemandHigh
	}
}
