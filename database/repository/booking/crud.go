// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"notarius/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the unique index that makes CreateBooking the
// final arbiter against double-booking: one document per
// (service_type, start).
func ensureIndexes(coll *mongo.Collection) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "service_type", Value: 1}, {Key: "start", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("failed to ensure booking indexes: %v", err)
	}
}

func (r *mongoBookingRepo) ListBookings(ctx context.Context, date time.Time, serviceType string) ([]models.ExistingBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	filter := bson.M{
		"service_type": serviceType,
		"start":        bson.M{"$gte": dayStart, "$lt": dayEnd},
		"status":       "Confirmed",
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Booking
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	out := make([]models.ExistingBooking, 0, len(docs))
	for _, b := range docs {
		out = append(out, models.ExistingBooking{
			Start:           b.Start,
			ServiceType:     b.ServiceType,
			DurationMinutes: b.DurationMinutes,
		})
	}
	return out, nil
}

func (r *mongoBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrBookingConflict
		}
		return "", fmt.Errorf("failed to insert booking: %w", err)
	}
	return booking.ID, nil
}
