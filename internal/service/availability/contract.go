package availability

import (
	"context"
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// CalendarClient lists events intersecting [timeMin, timeMax)
type CalendarClient interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time, limit int) ([]domain.CalendarEvent, error)
}

// Logger is the logging interface used by the checker
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
