package status

import "errors"

var (
	// ErrInvalidInput is returned for a malformed payment intent id
	ErrInvalidInput = errors.New("status: invalid payment intent id")

	// ErrInternal is returned when the ledger cannot be read
	ErrInternal = errors.New("status: internal error")
)
