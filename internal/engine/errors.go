package engine

import "errors"

// Sentinel errors returned by the pricing and availability engines.
// Callers are expected to branch with errors.Is; the engines never log,
// retry, or partially compute on invalid input.
var (
	ErrRateNotFound       = errors.New("no active rate card for vehicle")
	ErrInvalidDays        = errors.New("rental days must be at least 1")
	ErrInvalidDistance    = errors.New("estimated distance must not be negative")
	ErrInvalidHours       = errors.New("trip hours must be at least 8")
	ErrInvalidServiceArea = errors.New("unknown service area")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
	ErrInvalidClock       = errors.New("clock time must be in HH:MM format")
)
