package booking_status

import (
	"context"

	"github.com/m04kA/mehndi-booking-service/internal/service/status/models"
)

type StatusService interface {
	Get(ctx context.Context, paymentIntentID string) (*models.StatusResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
