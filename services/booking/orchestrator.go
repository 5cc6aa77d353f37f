// File: services/booking/orchestrator.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "notarius/database/repository/booking"
	"notarius/models"
	"notarius/services/pricing"
	"notarius/services/reservation"
	"notarius/services/scheduling"
	"notarius/utils"

	"go.uber.org/zap"
)

// GetAvailableSlots returns the offerable slots for a date and service
// type.
func (e *DefaultBookingEngine) GetAvailableSlots(ctx context.Context, date time.Time, serviceType string) ([]models.Slot, error) {
	return e.Availability.GetAvailableSlots(ctx, date, serviceType)
}

// GetPriceQuote resolves travel distance for the address and prices the
// requested time, applying a promotion code when one is supplied.
func (e *DefaultBookingEngine) GetPriceQuote(ctx context.Context, serviceType, address string, requestedAt time.Time, promoCode string) (*models.PriceBreakdown, error) {
	logger := utils.GetLogger()

	profile, err := e.Profiles.Get(serviceType)
	if err != nil {
		logger.Error("price quote for unconfigured service type",
			zap.String("serviceType", serviceType), zap.Error(err))
		return nil, scheduling.NewConfigError(err.Error())
	}

	dist := e.Distance.Resolve(ctx, e.BaseAddress, address)

	var promo *models.Promotion
	if promoCode != "" && e.Promotions != nil {
		promo, _ = e.Promotions.Find(promoCode)
	}

	breakdown := pricing.Calculate(profile, dist, requestedAt, time.Now().UTC(), promo, e.Pricing)

	// Audit trail: record which resolver tier produced the billed number.
	logger.Info("price quote computed",
		zap.String("serviceType", serviceType),
		zap.String("destination", address),
		zap.Float64("distanceMiles", dist.DistanceMiles),
		zap.String("distanceSource", string(dist.Source)),
		zap.Float64("total", breakdown.Total),
		zap.Bool("promotionApplied", breakdown.PromotionApplied))
	return &breakdown, nil
}

// HoldSlot places a short-lived hold on a slot at checkout start.
func (e *DefaultBookingEngine) HoldSlot(ctx context.Context, start time.Time, serviceType, holder string) (*models.Hold, error) {
	if _, err := e.Profiles.Get(serviceType); err != nil {
		return nil, scheduling.NewConfigError(err.Error())
	}

	hold, err := e.Holds.TryHold(ctx, models.SlotKey(start, serviceType), holder, e.HoldTTL)
	if err != nil {
		if reservation.IsConflict(err) {
			return nil, NewConflictError("slot just became unavailable")
		}
		return nil, err
	}
	return hold, nil
}

// ConfirmBooking finalizes a checkout: it re-validates the caller's hold
// (re-holding atomically if the original lapsed), re-prices at the final
// requested time, and persists the booking. The hold is confirmed before
// persistence so its TTL cannot lapse mid-write, and released again if
// persistence fails so the slot does not become permanently unavailable.
func (e *DefaultBookingEngine) ConfirmBooking(ctx context.Context, start time.Time, holder string, details models.BookingDetails) (*models.Booking, *models.PriceBreakdown, error) {
	logger := utils.GetLogger()

	profile, err := e.Profiles.Get(details.ServiceType)
	if err != nil {
		logger.Error("booking confirm for unconfigured service type",
			zap.String("serviceType", details.ServiceType), zap.Error(err))
		return nil, nil, scheduling.NewConfigError(err.Error())
	}

	key := models.SlotKey(start, details.ServiceType)
	if err := e.ensureHold(ctx, key, holder); err != nil {
		return nil, nil, err
	}

	// Re-price with the final requested time so the captured amount
	// matches what the customer last saw.
	breakdown, err := e.GetPriceQuote(ctx, details.ServiceType, details.Address, start, details.PromotionCode)
	if err != nil {
		return nil, nil, err
	}

	if err := e.Holds.Confirm(ctx, key); err != nil {
		if reservation.IsMissingHold(err) {
			return nil, nil, NewConflictError("hold expired before confirmation")
		}
		return nil, nil, err
	}

	record := &models.Booking{
		ServiceType:     details.ServiceType,
		Start:           start.UTC(),
		DurationMinutes: profile.DurationMinutes,
		CustomerName:    details.CustomerName,
		CustomerEmail:   details.CustomerEmail,
		Address:         details.Address,
		TotalPrice:      breakdown.Total,
		DistanceMiles:   breakdown.DistanceMiles,
		DistanceSource:  string(breakdown.DistanceSource),
		Status:          "Confirmed",
	}

	id, err := e.Bookings.CreateBooking(ctx, record)
	if err != nil {
		// The confirmed hold would otherwise pin the slot forever.
		if relErr := e.Holds.Release(ctx, key); relErr != nil {
			logger.Error("failed to release hold after persistence failure",
				zap.String("slotKey", key), zap.Error(relErr))
		}
		if errors.Is(err, bookingRepo.ErrBookingConflict) {
			return nil, nil, NewConflictError("slot was booked by another customer")
		}
		return nil, nil, fmt.Errorf("failed to persist booking: %w", err)
	}
	record.ID = id

	if e.Notify != nil {
		payload := models.BookingNotification{
			BookingID:     record.ID,
			ServiceType:   record.ServiceType,
			Start:         record.Start,
			CustomerEmail: record.CustomerEmail,
			CustomerName:  record.CustomerName,
			TotalPrice:    record.TotalPrice,
		}
		if err := e.Notify.EnqueueBookingConfirmed(payload); err != nil {
			logger.Error("failed to enqueue booking notification",
				zap.String("bookingID", record.ID), zap.Error(err))
		}
	}

	logger.Info("booking confirmed",
		zap.String("bookingID", record.ID),
		zap.String("serviceType", record.ServiceType),
		zap.Time("start", record.Start),
		zap.Float64("total", record.TotalPrice),
		zap.String("distanceSource", record.DistanceSource))
	return record, breakdown, nil
}

// ensureHold verifies the caller still owns an ACTIVE hold on key, or
// re-holds atomically when the original expired. Another customer's hold
// is a conflict.
func (e *DefaultBookingEngine) ensureHold(ctx context.Context, key, holder string) error {
	hold, err := e.Holds.Get(ctx, key)
	if err == nil {
		if hold.Holder != holder {
			return NewConflictError("slot is held by another customer")
		}
		return nil
	}
	if !reservation.IsMissingHold(err) {
		return err
	}

	if _, err := e.Holds.TryHold(ctx, key, holder, e.HoldTTL); err != nil {
		if reservation.IsConflict(err) {
			return NewConflictError("slot just became unavailable")
		}
		return err
	}
	return nil
}

// ReleaseHold drops the hold for a slot when the customer abandons
// checkout.
func (e *DefaultBookingEngine) ReleaseHold(ctx context.Context, start time.Time, serviceType string) error {
	return e.Holds.Release(ctx, models.SlotKey(start, serviceType))
}

// GetHold returns the current hold for a slot, for support tooling.
func (e *DefaultBookingEngine) GetHold(ctx context.Context, start time.Time, serviceType string) (*models.Hold, error) {
	return e.Holds.Get(ctx, models.SlotKey(start, serviceType))
}
