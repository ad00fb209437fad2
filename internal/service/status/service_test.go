package status

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/internal/infra/storage/payments"
	"github.com/m04kA/mehndi-booking-service/internal/service/status/models"
	"github.com/m04kA/mehndi-booking-service/pkg/logger"
)

type mockLedger struct {
	GetFunc func(ctx context.Context, id string) (*domain.PaymentRecord, error)
}

func (m *mockLedger) Get(ctx context.Context, id string) (*domain.PaymentRecord, error) {
	return m.GetFunc(ctx, id)
}

func record(status domain.PaymentStatus, eventID string) *domain.PaymentRecord {
	r := &domain.PaymentRecord{PaymentIntentID: "pi_1", Status: status}
	if eventID != "" {
		r.CalendarEventID = &eventID
	}
	return r
}

func TestGet_MapsLedgerStatus(t *testing.T) {
	tests := []struct {
		name      string
		record    *domain.PaymentRecord
		err       error
		want      string
		wantEvent string
	}{
		{"not yet received", nil, payments.ErrPaymentNotFound, models.StatusPending, ""},
		{"processing", record(domain.PaymentProcessing, ""), nil, models.StatusProcessing, ""},
		{"confirmed", record(domain.PaymentCompleted, "evt_9"), nil, models.StatusConfirmed, "evt_9"},
		{"escalated", record(domain.PaymentEscalated, ""), nil, models.StatusEscalated, ""},
		{"refunded", record(domain.PaymentRefunded, ""), nil, models.StatusRefunded, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&mockLedger{GetFunc: func(context.Context, string) (*domain.PaymentRecord, error) {
				return tt.record, tt.err
			}}, logger.NewNop())

			resp, err := svc.Get(context.Background(), "pi_1")
			require.NoError(t, err)
			assert.Equal(t, "pi_1", resp.PaymentIntentID)
			assert.Equal(t, tt.want, resp.Status)
			assert.Equal(t, tt.wantEvent, resp.CalendarEventID)
		})
	}
}

func TestGet_RejectsMalformedID(t *testing.T) {
	svc := NewService(&mockLedger{}, logger.NewNop())
	_, err := svc.Get(context.Background(), "evt_1")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestGet_LedgerFailure(t *testing.T) {
	svc := NewService(&mockLedger{GetFunc: func(context.Context, string) (*domain.PaymentRecord, error) {
		return nil, payments.ErrExecQuery
	}}, logger.NewNop())

	_, err := svc.Get(context.Background(), "pi_1")
	assert.True(t, errors.Is(err, ErrInternal))
}
