package bookingRepo

import "errors"

// ErrBookingConflict indicates another booking already occupies the same
// (serviceType, start) pair. Surfaced to the caller as a retryable
// slot-conflict condition.
var ErrBookingConflict = errors.New("booking conflict: slot already booked")
