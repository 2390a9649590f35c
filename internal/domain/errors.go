package domain

import "errors"

var (
	// ErrSeatUnavailable: the seat is held by someone else or already booked.
	ErrSeatUnavailable = errors.New("seat unavailable")
	// ErrHoldExpired: the hold TTL lapsed before commit; the seat must be re-held.
	ErrHoldExpired  = errors.New("seat hold expired")
	ErrHoldNotFound = errors.New("seat hold not found")
	// ErrIdentifierSpaceExhausted: tracking-code generation kept colliding.
	// Operator-visible, not user-recoverable.
	ErrIdentifierSpaceExhausted = errors.New("identifier space exhausted")
	// ErrInvalidTransition: the requested state change violates the lifecycle graph.
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrFlightNotFound    = errors.New("flight not found")
	ErrDraftNotFound     = errors.New("booking draft not found")
	// ErrMalformedCode: input failed tracking-code normalization, rejected
	// before any store lookup.
	ErrMalformedCode = errors.New("malformed tracking code")
	ErrValidation    = errors.New("validation failed")
)
