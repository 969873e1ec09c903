package services

import "errors"

var (
	// ErrInvalidURL is returned when a destination does not parse as an absolute URL.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrInvalidFormat is returned for a bulk line that is not Caption;URL.
	ErrInvalidFormat = errors.New("invalid format, expected Caption;URL")
	// ErrInvalidAlias is returned when an alias does not satisfy the short-code format.
	ErrInvalidAlias = errors.New("alias must be 2-50 letters, digits or hyphens")
	// ErrAliasTaken is returned when a short code is already assigned.
	ErrAliasTaken = errors.New("alias already exists")
	// ErrAllocationExhausted is returned when random generation keeps colliding.
	ErrAllocationExhausted = errors.New("could not generate a unique short code")
	// ErrNotFound is returned when no link has the requested short code.
	ErrNotFound = errors.New("link not found")
	// ErrLimitReached is returned when the daily creation quota is spent.
	ErrLimitReached = errors.New("daily limit reached")
	// ErrUnavailable is returned when the store cannot be reached.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrPersistFailed is reported for a staged bulk item that did not land.
	ErrPersistFailed = errors.New("failed to save link")
)
