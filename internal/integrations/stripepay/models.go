package stripepay

import (
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// EventPaymentSucceeded is the webhook event type that confirms a deposit
const EventPaymentSucceeded = "payment_intent.succeeded"

// Config for the Stripe client
type Config struct {
	SecretKey         string
	WebhookSecret     string
	WebhookTolerance  time.Duration
	Timeout           time.Duration
	MaxNetworkRetries int64
	// BaseURL overrides the API endpoint, empty for production
	BaseURL string
}

// IntentRequest describes a deposit to collect
type IntentRequest struct {
	Amount         domain.Money
	Currency       string
	Description    string
	ReceiptEmail   string
	Metadata       map[string]string
	IdempotencyKey string
}

// WebhookEvent is a verified webhook. Confirmation is set only for
// payment_intent.succeeded.
type WebhookEvent struct {
	ID           string
	Type         string
	Confirmation *domain.PaymentConfirmation
}

// Logger is the logging interface of the client
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics receives call timings
type Metrics interface {
	ObserveExternal(collaborator, operation string, err error, d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) ObserveExternal(string, string, error, time.Duration) {}
