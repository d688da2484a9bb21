package domain

import "errors"

// Core error taxonomy. Use-case packages wrap these so callers can match with errors.Is.
var (
	// ErrInvalidRange start date is after end date
	ErrInvalidRange = errors.New("domain: invalid date range")

	// ErrInvalidDuration reservation is shorter than one night
	ErrInvalidDuration = errors.New("domain: reservation must be at least one night")

	// ErrPriceMismatch declared or authorized price differs from the computed one
	ErrPriceMismatch = errors.New("domain: price mismatch")

	// ErrConflict requested dates overlap a paid booking
	ErrConflict = errors.New("domain: dates unavailable")

	// ErrProcessor payment processor rejected or failed a call
	ErrProcessor = errors.New("domain: payment processor error")

	// ErrPersistence store unavailable or transaction conflict
	ErrPersistence = errors.New("domain: persistence error")

	// ErrInvalidTransition settlement state machine transition is not allowed
	ErrInvalidTransition = errors.New("domain: invalid settlement transition")
)
