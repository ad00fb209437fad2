package googlecalendar

import "errors"

var (
	// ErrEventNotFound is returned when the event does not exist or was deleted
	ErrEventNotFound = errors.New("googlecalendar: event not found")

	// ErrUnavailable is returned for transport failures, throttling and 5xx responses
	ErrUnavailable = errors.New("googlecalendar: service unavailable")

	// ErrRequestFailed is returned for any other API failure
	ErrRequestFailed = errors.New("googlecalendar: request failed")

	// ErrInvalidEvent is returned when an API event cannot be converted
	ErrInvalidEvent = errors.New("googlecalendar: invalid event")

	// ErrInvalidConfig is returned when the client cannot be built
	ErrInvalidConfig = errors.New("googlecalendar: invalid configuration")
)
