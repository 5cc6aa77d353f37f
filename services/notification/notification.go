// File: services/notification/notification.go
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"notarius/config"
	"notarius/models"
	"notarius/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingNotify = "booking:notify"

// Notifier delivers booking confirmations to the customer. Delivery
// transport (email/SMS/push) lives outside the engine; implementations
// plug in here.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, payload models.BookingNotification) error
}

// LogNotifier is the default Notifier: it records the confirmation and
// leaves delivery to the surrounding application.
type LogNotifier struct{}

func (LogNotifier) SendBookingConfirmation(ctx context.Context, payload models.BookingNotification) error {
	utils.GetLogger().Info("booking confirmation ready for delivery",
		zap.String("bookingID", payload.BookingID),
		zap.String("customerEmail", payload.CustomerEmail),
		zap.Time("start", payload.Start))
	return nil
}

// Enqueuer pushes booking notifications onto the task queue so the
// booking path never blocks on delivery.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer() *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskDB,
		}),
	}
}

// EnqueueBookingConfirmed queues a confirmation task. Failures are the
// caller's to log; they must never fail the booking itself.
func (e *Enqueuer) EnqueueBookingConfirmed(payload models.BookingNotification) error {
	task, err := NewBookingNotifyTask(payload)
	if err != nil {
		return err
	}
	if _, err := e.client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue booking notification: %w", err)
	}
	return nil
}

// NewBookingNotifyTask builds the asynq task for a confirmed booking.
func NewBookingNotifyTask(payload models.BookingNotification) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingNotify, b), nil
}
