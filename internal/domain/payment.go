package domain

import "time"

// PaymentStatus is the processing state of a confirmed payment
type PaymentStatus string

const (
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentEscalated  PaymentStatus = "escalated"
	PaymentRefunded   PaymentStatus = "refunded"
)

// PaymentRecord is the ledger entry for one payment intent
type PaymentRecord struct {
	PaymentIntentID string
	Status          PaymentStatus
	CalendarEventID *string
	Attempts        int
	LastError       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsFinal returns true if the payment needs no further processing
func (p *PaymentRecord) IsFinal() bool {
	return p.Status != PaymentProcessing
}

// PaymentIntent is a created deposit charge
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       Money
	Currency     string
	Status       string
}

// Open reports whether the customer can still pay the intent. An intent
// replayed by an idempotency key may already be paid or cancelled.
func (p *PaymentIntent) Open() bool {
	switch p.Status {
	case "succeeded", "canceled", "processing", "requires_capture":
		return false
	}
	return true
}

// PaymentConfirmation is a verified payment_intent.succeeded notification
type PaymentConfirmation struct {
	EventID         string
	PaymentIntentID string
	Amount          Money
	Currency        string
	Metadata        map[string]string
}
