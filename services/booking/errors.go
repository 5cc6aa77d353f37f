package booking

import "fmt"

// ConflictError signals that the requested slot was claimed by another
// customer between availability display and checkout. Retryable: the UI
// should refresh availability and offer a new slot.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewConflictError(msg string) error {
	return &ConflictError{
		Code:    "slotConflict",
		Message: msg,
	}
}

// IsConflict reports whether err is a slot conflict.
func IsConflict(err error) bool {
	_, ok := err.(*ConflictError)
	return ok
}
