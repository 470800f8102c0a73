package domain

import "errors"

var (
	ErrPackageNotFound = errors.New("package not found")
	ErrBookingNotFound = errors.New("booking not found")
)

var (
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrInvalidPartySize     = errors.New("invalid party size")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrNotAuthorized        = errors.New("not authorized")
)

// ErrStorageUnavailable wraps transient store failures. It is the only
// retryable class: a failed call leaves no partial writes behind, so
// callers may simply retry.
var ErrStorageUnavailable = errors.New("storage unavailable")
