package models

import "time"

// HoldState tracks the lifecycle of a slot reservation.
type HoldState string

const (
	HoldActive    HoldState = "ACTIVE"
	HoldConfirmed HoldState = "CONFIRMED"
	HoldExpired   HoldState = "EXPIRED"
	HoldReleased  HoldState = "RELEASED"
)

// Hold is a short-lived reservation that keeps a slot off the market while
// one customer completes checkout. At most one ACTIVE or CONFIRMED hold may
// exist per slot key at any time.
type Hold struct {
	ID        string    `json:"id"`
	SlotKey   string    `json:"slotKey"`
	Holder    string    `json:"holder"` // session ID or customer email
	State     HoldState `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"` // zero once CONFIRMED
}
