package stripepay

import "errors"

var (
	// ErrCardDeclined is returned when the card was rejected
	ErrCardDeclined = errors.New("stripepay: card declined")

	// ErrInvalidSignature is returned when a webhook cannot be verified
	ErrInvalidSignature = errors.New("stripepay: invalid webhook signature")

	// ErrInvalidPayload is returned for a verified webhook with an unreadable body
	ErrInvalidPayload = errors.New("stripepay: invalid webhook payload")

	// ErrUnavailable is returned for network failures, throttling and 5xx responses
	ErrUnavailable = errors.New("stripepay: service unavailable")

	// ErrRequestFailed is returned for any other API failure
	ErrRequestFailed = errors.New("stripepay: request failed")

	// ErrInvalidConfig is returned when the client cannot be built
	ErrInvalidConfig = errors.New("stripepay: invalid configuration")
)
