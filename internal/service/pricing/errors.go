package pricing

import "errors"

var (
	// ErrUnknownPackage is returned for a package missing from the price table
	ErrUnknownPackage = errors.New("pricing: unknown package")

	// ErrInvalidRules is returned when the price table cannot be used
	ErrInvalidRules = errors.New("pricing: invalid rules")

	// ErrInvalidSelection is returned for impossible selections
	ErrInvalidSelection = errors.New("pricing: invalid selection")
)
