package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/internal/integrations/stripepay"
	"github.com/m04kA/mehndi-booking-service/internal/service/pricing"
)

// Calculator prices a selection
type Calculator interface {
	Known(name string) bool
	Quote(sel pricing.Selection) (domain.PriceQuote, error)
}

// AvailabilityChecker returns calendar events overlapping a slot
type AvailabilityChecker interface {
	Conflicts(ctx context.Context, slot domain.TimeSlot) ([]domain.CalendarEvent, error)
}

// PaymentClient creates deposit payment intents
type PaymentClient interface {
	CreatePaymentIntent(ctx context.Context, req stripepay.IntentRequest) (*domain.PaymentIntent, error)
}

// Metrics counts booking outcomes
type Metrics interface {
	BookingOutcome(outcome string)
}

// TimeProvider returns the current time
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface of the use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider reads the system clock
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
