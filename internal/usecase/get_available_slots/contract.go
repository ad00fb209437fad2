package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// AvailabilityChecker returns calendar events overlapping a time range
type AvailabilityChecker interface {
	Conflicts(ctx context.Context, slot domain.TimeSlot) ([]domain.CalendarEvent, error)
}

// PackageCatalog reports whether a package exists
type PackageCatalog interface {
	Known(name string) bool
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
