package reservation

import "fmt"

// HoldError carries a machine-readable code so handlers can map conflicts
// to a retryable response.
type HoldError struct {
	Code    string
	Message string
}

func (e *HoldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewConflictError reports that the slot key is already held.
func NewConflictError(slotKey string) error {
	return &HoldError{
		Code:    "slotConflict",
		Message: fmt.Sprintf("slot %s is already held", slotKey),
	}
}

// NewMissingHoldError reports that no hold exists for the slot key.
func NewMissingHoldError(slotKey string) error {
	return &HoldError{
		Code:    "holdMissing",
		Message: fmt.Sprintf("no active hold for slot %s", slotKey),
	}
}

// IsConflict reports whether err is a slot-conflict hold error.
func IsConflict(err error) bool {
	he, ok := err.(*HoldError)
	return ok && he.Code == "slotConflict"
}

// IsMissingHold reports whether err indicates an absent or expired hold.
func IsMissingHold(err error) bool {
	he, ok := err.(*HoldError)
	return ok && he.Code == "holdMissing"
}
