package payment_webhook

import (
	"context"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/internal/integrations/stripepay"
	confirmPayment "github.com/m04kA/mehndi-booking-service/internal/usecase/confirm_payment"
)

// WebhookVerifier checks the signature and decodes the event
type WebhookVerifier interface {
	ParseWebhook(payload []byte, signature string) (*stripepay.WebhookEvent, error)
}

type ConfirmPaymentUseCase interface {
	Execute(ctx context.Context, c *domain.PaymentConfirmation) (*confirmPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
