package confirm_payment

import "time"

// Outcome is how a confirmation ended
type Outcome string

const (
	// OutcomeConfirmed means the calendar event exists and emails were attempted
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeDuplicate means the payment had already been processed
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeRefunded means the slot was lost and the deposit went back
	OutcomeRefunded Outcome = "refunded"
	// OutcomeEscalated means an operator has to finish the booking
	OutcomeEscalated Outcome = "escalated"
)

// Response describes the result of a confirmation
type Response struct {
	PaymentIntentID string
	Outcome         Outcome
	CalendarEventID string
}

// Options tune retries of transient failures
type Options struct {
	// MaxAttempts is how many deliveries may retry a transient failure
	// before the payment is escalated
	MaxAttempts int
	// ClaimTimeout is how long a claim stays owned before a new delivery may take over
	ClaimTimeout time.Duration
}

// DefaultOptions returns the production retry settings
func DefaultOptions() Options {
	return Options{MaxAttempts: 5, ClaimTimeout: 2 * time.Minute}
}
