package utils

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the engine's dependency snapshot: the booking store and
// the two redis concerns (slot holds and the short-lived caches).
type HealthStatus struct {
	BookingStore bool      `json:"bookingStore"`
	HoldStore    bool      `json:"holdStore"`
	Cache        bool      `json:"cache"`
	CheckedAt    time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings mongo and both redis clients on a fixed
// interval and updates the in-memory snapshot.
func StartHealthMonitor(mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			snapshot := HealthStatus{
				BookingStore: mongoClient.Ping(ctx, nil) == nil,
				HoldStore:    GetHoldCacheClient().Ping(ctx).Err() == nil,
				Cache:        GetCacheClient().Ping(ctx).Err() == nil,
				CheckedAt:    time.Now(),
			}

			healthMu.Lock()
			currentHealth = snapshot
			healthMu.Unlock()
		}
	}()
}
