package events

import "errors"

var (
	// ErrEventNotFound is returned when the event does not exist
	ErrEventNotFound = errors.New("events: event not found")

	// ErrInvalidInput is returned for an empty or malformed event id
	ErrInvalidInput = errors.New("events: invalid input data")

	// ErrUnavailable is returned when the calendar cannot be reached
	ErrUnavailable = errors.New("events: calendar unavailable")

	// ErrInternal is returned for any other failure
	ErrInternal = errors.New("events: internal error")
)
