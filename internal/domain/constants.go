package domain

import "time"

// Default booking policy values
const (
	DefaultLocation        = "Europe/London"
	DefaultBookingDuration = 3 * time.Hour
	DefaultLookaheadDays   = 30
	DefaultCurrency        = "gbp"
	ConfirmedEventColorID  = "10"
)

// Business validation constants
const (
	MinNameLength       = 2
	MaxNameLength       = 50
	MaxAdditionalPeople = 10
	MinGuestHours       = 1
	MaxGuestHours       = 8
	MaxListedEvents     = 100
	MaxCallbackLength   = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Booking outcomes recorded in metrics
const (
	OutcomeValidationFailed = "validation_failed"
	OutcomeConflict         = "conflict"
	OutcomePaymentInitiated = "payment_initiated"
	OutcomePaymentFailed    = "payment_failed"
	OutcomeConfirmed        = "confirmed"
	OutcomeDuplicate        = "duplicate"
	OutcomeEscalated        = "escalated"
	OutcomeRefunded         = "refunded"
	OutcomeRetry            = "retry"
)
