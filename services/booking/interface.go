// File: services/booking/interface.go
package booking

import (
	"context"
	"time"

	"notarius/models"
	"notarius/services/pricing"
)

// BookingEngine is the public surface the engine exposes to the rest of
// the application.
type BookingEngine interface {
	GetAvailableSlots(ctx context.Context, date time.Time, serviceType string) ([]models.Slot, error)
	GetPriceQuote(ctx context.Context, serviceType, address string, requestedAt time.Time, promoCode string) (*models.PriceBreakdown, error)
	HoldSlot(ctx context.Context, start time.Time, serviceType, holder string) (*models.Hold, error)
	ConfirmBooking(ctx context.Context, start time.Time, holder string, details models.BookingDetails) (*models.Booking, *models.PriceBreakdown, error)
	ReleaseHold(ctx context.Context, start time.Time, serviceType string) error
	GetHold(ctx context.Context, start time.Time, serviceType string) (*models.Hold, error)
}

// AvailabilityProvider produces the offerable slot list.
type AvailabilityProvider interface {
	GetAvailableSlots(ctx context.Context, date time.Time, serviceType string) ([]models.Slot, error)
}

// HoldRegistry is the reservation store contract the orchestrator needs.
type HoldRegistry interface {
	TryHold(ctx context.Context, slotKey, holder string, ttl time.Duration) (*models.Hold, error)
	Get(ctx context.Context, slotKey string) (*models.Hold, error)
	Confirm(ctx context.Context, slotKey string) error
	Release(ctx context.Context, slotKey string) error
}

// DistanceService resolves travel distance for pricing.
type DistanceService interface {
	Resolve(ctx context.Context, origin, destination string) models.DistanceResult
}

// BookingWriter is the write side of the external booking store.
type BookingWriter interface {
	CreateBooking(ctx context.Context, booking *models.Booking) (string, error)
}

// NotificationEnqueuer hands confirmed bookings to the delivery queue.
type NotificationEnqueuer interface {
	EnqueueBookingConfirmed(payload models.BookingNotification) error
}

// DefaultBookingEngine is the production implementation.
type DefaultBookingEngine struct {
	Availability AvailabilityProvider
	Holds        HoldRegistry
	Distance     DistanceService
	Bookings     BookingWriter
	Profiles     *models.ProfileCatalog
	Promotions   pricing.PromotionSource
	Pricing      pricing.Config
	Notify       NotificationEnqueuer
	BaseAddress  string
	HoldTTL      time.Duration
}
