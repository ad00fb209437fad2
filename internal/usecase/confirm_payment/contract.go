package confirm_payment

import (
	"context"
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// Ledger records which payments were processed
type Ledger interface {
	Claim(ctx context.Context, paymentIntentID string, staleBefore time.Time) (*domain.PaymentRecord, bool, error)
	MarkCompleted(ctx context.Context, paymentIntentID, calendarEventID string) error
	MarkStatus(ctx context.Context, paymentIntentID string, status domain.PaymentStatus, lastError string) error
	Release(ctx context.Context, paymentIntentID, lastError string) error
}

// CalendarClient writes confirmed bookings
type CalendarClient interface {
	InsertEvent(ctx context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error)
	FindByPaymentID(ctx context.Context, paymentIntentID string) (*domain.CalendarEvent, error)
}

// AvailabilityChecker returns calendar events overlapping a slot
type AvailabilityChecker interface {
	Conflicts(ctx context.Context, slot domain.TimeSlot) ([]domain.CalendarEvent, error)
}

// Refunder returns a deposit
type Refunder interface {
	Refund(ctx context.Context, paymentIntentID, reason string) (string, error)
}

// Notifier emails the owner and the customer
type Notifier interface {
	BookingConfirmed(ctx context.Context, b *domain.Booking, q domain.PriceQuote) error
	SlotLostRefunded(ctx context.Context, b *domain.Booking, q domain.PriceQuote) error
}

// Escalator hands a paid booking to an operator
type Escalator interface {
	Escalate(ctx context.Context, item domain.ReconciliationItem) error
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
