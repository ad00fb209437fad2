package book_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/mehndi-booking-service/internal/api/handlers"
	"github.com/m04kA/mehndi-booking-service/internal/domain"
	createBooking "github.com/m04kA/mehndi-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgSlotNotAvailable   = "Sorry, this slot is already booked. Please choose another time."
	msgPaymentDeclined    = "Your payment could not be started. Please try another card."
	msgUpstream           = "Booking service is temporarily unavailable. Please try again."
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /book-event
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book-event - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /book-event - Validation failed: email=%s, error=%v", req.Email, err)
			handlers.RespondValidation(w, err)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /book-event - Slot not available: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrPaymentDeclined):
			h.logger.Warn("POST /book-event - Payment declined: email=%s", req.Email)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentDeclined)

		case errors.Is(err, createBooking.ErrUpstream):
			h.logger.Error("POST /book-event - Upstream failure: email=%s, error=%v", req.Email, err)
			handlers.RespondUpstream(w, err, msgUpstream)

		default:
			h.logger.Error("POST /book-event - Failed to book: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /book-event - Payment initiated: payment_intent=%s, email=%s",
		result.PaymentIntentID, req.Email)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
