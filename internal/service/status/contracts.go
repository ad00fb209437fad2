package status

import (
	"context"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// PaymentLedger reads the processing state of payments
type PaymentLedger interface {
	Get(ctx context.Context, paymentIntentID string) (*domain.PaymentRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
