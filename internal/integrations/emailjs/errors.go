package emailjs

import "errors"

var (
	// ErrInternal is returned when the request cannot be built or sent
	ErrInternal = errors.New("emailjs: internal error")

	// ErrRejected is returned when EmailJS refuses the message (4xx)
	ErrRejected = errors.New("emailjs: message rejected")

	// ErrUnavailable is returned for timeouts, throttling and 5xx responses
	ErrUnavailable = errors.New("emailjs: service unavailable")
)
