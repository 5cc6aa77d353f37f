package models

import (
	"fmt"
	"time"
)

// DemandTier is a coarse utilization indicator shown to customers. It is
// display-only and never affects slot eligibility or ordering.
type DemandTier string

const (
	DemandLow    DemandTier = "low"
	DemandMedium DemandTier = "medium"
	DemandHigh   DemandTier = "high"
)

// Slot is a candidate appointment window, computed per request and never
// persisted by the engine.
type Slot struct {
	Start       time.Time  `json:"start"` // UTC
	End         time.Time  `json:"end"`
	ServiceType string     `json:"serviceType"`
	Available   bool       `json:"available"`
	Demand      DemandTier `json:"demand,omitempty"`
}

// Key returns the reservation key identifying this slot: start timestamp
// plus service type.
func (s Slot) Key() string {
	return SlotKey(s.Start, s.ServiceType)
}

// SlotKey builds the canonical hold key for a slot start and service type.
func SlotKey(start time.Time, serviceType string) string {
	return fmt.Sprintf("hold:%s:%s", serviceType, start.UTC().Format(time.RFC3339))
}

// ExistingBooking is the read-only projection of a persisted booking used
// for conflict checks.
type ExistingBooking struct {
	Start           time.Time `json:"start"`
	ServiceType     string    `json:"serviceType"`
	DurationMinutes int       `json:"durationMinutes"`
}

// End returns the booking's end time.
func (b ExistingBooking) End() time.Time {
	return b.Start.Add(time.Duration(b.DurationMinutes) * time.Minute)
}
