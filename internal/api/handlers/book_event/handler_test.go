package book_event

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/mehndi-booking-service/internal/api/handlers"
	"github.com/m04kA/mehndi-booking-service/internal/domain"
	createBooking "github.com/m04kA/mehndi-booking-service/internal/usecase/create_booking"
	"github.com/m04kA/mehndi-booking-service/pkg/logger"
)

type mockUseCase struct {
	ExecuteFunc func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
	got         *createBooking.Request
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	m.got = req
	return m.ExecuteFunc(ctx, req)
}

const body = `{
	"name": "Amy Khan",
	"email": "amy@example.com",
	"phone": "+447700900123",
	"address": "1 High Street",
	"city": "Leicester",
	"postcode": "LE1 5AB",
	"packageType": "Classic",
	"additionalPeople": [{"packageType": "Elegance"}],
	"isGuestBooking": true,
	"guestDuration": 2,
	"date": "2026-07-15",
	"slot": "Morning",
	"time": "10:00",
	"callRequested": true,
	"callTimes": "evenings",
	"termsAccepted": true,
	"depositAmount": 90
}`

func serve(uc *mockUseCase, payload string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/book-event", strings.NewReader(payload)))
	return rec
}

func TestHandle_Success(t *testing.T) {
	start := time.Date(2026, time.July, 15, 9, 0, 0, 0, time.UTC)
	uc := &mockUseCase{ExecuteFunc: func(context.Context, *createBooking.Request) (*createBooking.Response, error) {
		return &createBooking.Response{
			PaymentIntentID: "pi_1",
			ClientSecret:    "pi_1_secret",
			Quote:           domain.PriceQuote{Total: domain.Pounds(485), Deposit: domain.Pounds(90), DiscountApplied: true},
			Slot:            domain.NewTimeSlot(start, 3*time.Hour),
		}, nil
	}}

	rec := serve(uc, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BookEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pi_1_secret", resp.ClientSecret)
	assert.Equal(t, "pi_1", resp.PaymentIntentID)
	assert.Equal(t, "£485.00", resp.TotalPrice)
	assert.Equal(t, "£90.00", resp.DepositAmount)
	assert.True(t, resp.DiscountApplied)
	assert.Equal(t, "2026-07-15T09:00:00Z", resp.StartDateTime)
	assert.Equal(t, "2026-07-15T12:00:00Z", resp.EndDateTime)

	require.NotNil(t, uc.got)
	assert.Equal(t, "Classic", uc.got.Package)
	assert.Equal(t, []string{"Elegance"}, uc.got.AdditionalPackages)
	assert.True(t, uc.got.GuestBooking)
	assert.Equal(t, 2, uc.got.GuestHours)
	assert.True(t, uc.got.CallbackRequested)
	require.NotNil(t, uc.got.Deposit)
	assert.Equal(t, 90.0, *uc.got.Deposit)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", domain.NewValidationError("email", "Please enter a valid email address."), http.StatusBadRequest},
		{"conflict", createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"declined", fmt.Errorf("%w: card_declined", createBooking.ErrPaymentDeclined), http.StatusPaymentRequired},
		{"upstream retryable", fmt.Errorf("%w: %w", createBooking.ErrUpstream, domain.ErrRetryable), http.StatusServiceUnavailable},
		{"upstream permanent", fmt.Errorf("%w: 403", createBooking.ErrUpstream), http.StatusBadGateway},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{ExecuteFunc: func(context.Context, *createBooking.Request) (*createBooking.Response, error) {
				return nil, tt.err
			}}

			rec := serve(uc, body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestHandle_ValidationBodyListsFields(t *testing.T) {
	verr := domain.NewValidationError("name", "Name must be between 2 and 50 characters.")
	verr.Add("termsAccepted", "You must accept the terms and conditions to proceed.")
	uc := &mockUseCase{ExecuteFunc: func(context.Context, *createBooking.Request) (*createBooking.Response, error) {
		return nil, verr
	}}

	rec := serve(uc, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Name must be between 2 and 50 characters.", resp.Message)
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, "termsAccepted", resp.Fields[1].Field)
}

func TestHandle_InvalidJSON(t *testing.T) {
	uc := &mockUseCase{}
	rec := serve(uc, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}
