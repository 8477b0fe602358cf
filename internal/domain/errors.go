package domain

import "errors"

// Sentinel errors shared by services and repositories. Compare with errors.Is.
var (
	// ErrNotFound is returned when the referenced event does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a request fails validation (missing fields,
	// end time not after start time, non-positive capacity, malformed email).
	ErrInvalidInput = errors.New("invalid input")

	// ErrCapacityExceeded is returned when an event already holds max_capacity attendees.
	ErrCapacityExceeded = errors.New("event is at full capacity")

	// ErrDuplicateRegistration is returned when the email is already registered for the event.
	ErrDuplicateRegistration = errors.New("attendee with this email already registered for this event")
)
