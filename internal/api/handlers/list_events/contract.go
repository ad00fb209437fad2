package list_events

import (
	"context"

	"github.com/m04kA/mehndi-booking-service/internal/service/events/models"
)

type EventService interface {
	ListUpcoming(ctx context.Context) (*models.EventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
