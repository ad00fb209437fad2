package googlecalendar

import (
	"time"
)

// PaymentIntentProperty is the private extended property linking an event to its payment
const PaymentIntentProperty = "paymentIntentId"

// Config for the calendar client
type Config struct {
	CalendarID      string
	CredentialsFile string
	Location        *time.Location
	Timeout         time.Duration
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
