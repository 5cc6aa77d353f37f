// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"notarius/database"
	"notarius/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository is the engine's view of the external booking store.
type BookingRepository interface {
	// ListBookings returns the confirmed bookings for a calendar date and
	// service type, projected for conflict checks.
	ListBookings(ctx context.Context, date time.Time, serviceType string) ([]models.ExistingBooking, error)
	// CreateBooking persists a booking. A duplicate (serviceType, start)
	// pair yields ErrBookingConflict.
	CreateBooking(ctx context.Context, booking *models.Booking) (string, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs the MongoDB-backed booking store.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database("notarius").Collection("bookings")
	ensureIndexes(coll)
	return &mongoBookingRepo{coll: coll}
}
