package payment_webhook

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/api/handlers"
	"github.com/m04kA/mehndi-booking-service/internal/integrations/stripepay"
	confirmPayment "github.com/m04kA/mehndi-booking-service/internal/usecase/confirm_payment"
)

const (
	signatureHeader = "Stripe-Signature"
	maxPayloadBytes = 65536

	msgUnreadableBody   = "Unable to read webhook body"
	msgInvalidSignature = "Webhook signature verification failed"
	msgInvalidPayload   = "Invalid webhook payload"
	msgRetryLater       = "Temporarily unable to process webhook"
)

type Handler struct {
	verifier WebhookVerifier
	useCase  ConfirmPaymentUseCase
	logger   Logger
	now      func() time.Time
}

func NewHandler(verifier WebhookVerifier, useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		verifier: verifier,
		useCase:  useCase,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle POST /webhook
// 2xx tells Stripe to stop redelivering; 503 asks for a retry.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgUnreadableBody)
		return
	}

	event, err := h.verifier.ParseWebhook(payload, r.Header.Get(signatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, stripepay.ErrInvalidSignature):
			h.logger.Warn("POST /webhook - Invalid signature: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSignature)
		default:
			h.logger.Warn("POST /webhook - Invalid payload: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayload)
		}
		return
	}

	if event.Type != stripepay.EventPaymentSucceeded || event.Confirmation == nil {
		h.logger.Info("POST /webhook - Ignoring event: id=%s, type=%s", event.ID, event.Type)
		handlers.RespondJSON(w, http.StatusOK, WebhookResponse{Received: true})
		return
	}

	result, err := h.useCase.Execute(r.Context(), event.Confirmation)
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /webhook - Invalid confirmation: event=%s, error=%v", event.ID, err)
			handlers.RespondBadRequest(w, msgInvalidPayload)

		case errors.Is(err, confirmPayment.ErrRetryLater), errors.Is(err, confirmPayment.ErrInProgress):
			h.logger.Warn("POST /webhook - Asking for redelivery: event=%s, error=%v", event.ID, err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, handlers.ErrorResponse{
				Message:   msgRetryLater,
				Retryable: true,
			})

		default:
			h.logger.Error("POST /webhook - Failed to confirm payment: event=%s, error=%v", event.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /webhook - Payment processed: payment_intent=%s, outcome=%s, calendar_event=%s",
		result.PaymentIntentID, result.Outcome, result.CalendarEventID)
	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{Received: true, Outcome: string(result.Outcome)})
}

// Alive handles GET /webhook
func (h *Handler) Alive(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, AliveResponse{
		Message:   "Webhook endpoint is alive",
		Timestamp: h.now().UTC(),
	})
}
