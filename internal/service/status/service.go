package status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/internal/infra/storage/payments"
	"github.com/m04kA/mehndi-booking-service/internal/service/status/models"
)

const paymentIntentPrefix = "pi_"

// Service tells the client how far a paid booking got
type Service struct {
	ledger PaymentLedger
	logger Logger
}

func NewService(ledger PaymentLedger, logger Logger) *Service {
	return &Service{ledger: ledger, logger: logger}
}

// Get returns the booking state for a payment intent. A payment the webhook
// has not reached yet is pending.
func (s *Service) Get(ctx context.Context, paymentIntentID string) (*models.StatusResponse, error) {
	if !strings.HasPrefix(paymentIntentID, paymentIntentPrefix) || len(paymentIntentID) > 255 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInput, paymentIntentID)
	}

	resp := &models.StatusResponse{PaymentIntentID: paymentIntentID, Status: models.StatusPending}

	record, err := s.ledger.Get(ctx, paymentIntentID)
	if err != nil {
		if errors.Is(err, payments.ErrPaymentNotFound) {
			return resp, nil
		}
		s.logger.Error("Get: failed to read ledger for %s: %v", paymentIntentID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	switch record.Status {
	case domain.PaymentCompleted:
		resp.Status = models.StatusConfirmed
	case domain.PaymentEscalated:
		resp.Status = models.StatusEscalated
	case domain.PaymentRefunded:
		resp.Status = models.StatusRefunded
	default:
		resp.Status = models.StatusProcessing
	}
	if record.CalendarEventID != nil {
		resp.CalendarEventID = *record.CalendarEventID
	}
	return resp, nil
}
