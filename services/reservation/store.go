// File: services/reservation/store.go
package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"notarius/models"
	"notarius/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry is the expiring hold store. TryHold is a single atomic
// set-if-not-exists against the backing KV, so two concurrent checkouts
// for the same slot can never both win.
type Registry struct {
	KV         utils.KV
	DefaultTTL time.Duration

	// now is the expiry clock; tests substitute it via SetClock.
	now func() time.Time
}

func NewRegistry(kv utils.KV, defaultTTL time.Duration) *Registry {
	return &Registry{KV: kv, DefaultTTL: defaultTTL, now: time.Now}
}

// SetClock replaces the registry's time source.
func (r *Registry) SetClock(clock func() time.Time) {
	r.now = clock
}

// TryHold atomically creates an ACTIVE hold for slotKey. If any ACTIVE or
// CONFIRMED hold already exists it returns a conflict error and the store
// is left untouched.
func (r *Registry) TryHold(ctx context.Context, slotKey, holder string, ttl time.Duration) (*models.Hold, error) {
	if ttl <= 0 {
		ttl = r.DefaultTTL
	}

	now := r.now().UTC()
	hold := models.Hold{
		ID:        uuid.New().String(),
		SlotKey:   slotKey,
		Holder:    holder,
		State:     models.HoldActive,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := json.Marshal(hold)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hold: %w", err)
	}

	ok, err := r.KV.SetNX(ctx, slotKey, data, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to register hold: %w", err)
	}
	if !ok {
		return nil, NewConflictError(slotKey)
	}

	utils.GetLogger().Debug("hold created",
		zap.String("slotKey", slotKey), zap.String("holder", holder),
		zap.Duration("ttl", ttl))
	return &hold, nil
}

// Get returns the current hold for slotKey, if one exists. Expired or
// terminal records are reported as missing, matching native TTL eviction.
func (r *Registry) Get(ctx context.Context, slotKey string) (*models.Hold, error) {
	data, err := r.KV.Get(ctx, slotKey)
	if err == utils.ErrKeyNotFound {
		return nil, NewMissingHoldError(slotKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read hold: %w", err)
	}

	var hold models.Hold
	if err := json.Unmarshal(data, &hold); err != nil {
		return nil, fmt.Errorf("failed to parse hold: %w", err)
	}

	// A record the backing store has not evicted yet but whose expiry has
	// passed must read as absent.
	if hold.State == models.HoldActive && !hold.ExpiresAt.IsZero() && !r.now().UTC().Before(hold.ExpiresAt) {
		return nil, NewMissingHoldError(slotKey)
	}
	if hold.State == models.HoldExpired || hold.State == models.HoldReleased {
		return nil, NewMissingHoldError(slotKey)
	}
	return &hold, nil
}

// Confirm transitions an ACTIVE hold to CONFIRMED and removes its expiry,
// so the slot stays claimed for the lifetime of the booking record.
func (r *Registry) Confirm(ctx context.Context, slotKey string) error {
	hold, err := r.Get(ctx, slotKey)
	if err != nil {
		return err
	}
	if hold.State == models.HoldConfirmed {
		return nil
	}

	hold.State = models.HoldConfirmed
	hold.ExpiresAt = time.Time{}

	data, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("failed to marshal confirmed hold: %w", err)
	}
	if err := r.KV.Set(ctx, slotKey, data, 0); err != nil {
		return fmt.Errorf("failed to confirm hold: %w", err)
	}

	utils.GetLogger().Info("hold confirmed", zap.String("slotKey", slotKey))
	return nil
}

// Release drops the hold for slotKey, making the slot available again.
// Used for explicit checkout abandonment and for rollback when booking
// persistence fails after a confirm.
func (r *Registry) Release(ctx context.Context, slotKey string) error {
	if err := r.KV.Del(ctx, slotKey); err != nil {
		return fmt.Errorf("failed to release hold: %w", err)
	}
	utils.GetLogger().Debug("hold released", zap.String("slotKey", slotKey))
	return nil
}

// IsAvailable reports whether no ACTIVE or CONFIRMED hold currently exists
// for slotKey.
func (r *Registry) IsAvailable(ctx context.Context, slotKey string) bool {
	_, err := r.Get(ctx, slotKey)
	return IsMissingHold(err)
}
