package events

import (
	"context"
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// CalendarClient reads and deletes calendar events
type CalendarClient interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time, limit int) ([]domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

// TimeProvider returns the current time
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface of the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider reads the system clock
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
