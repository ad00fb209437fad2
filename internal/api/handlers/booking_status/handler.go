package booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/mehndi-booking-service/internal/api/handlers"
	"github.com/m04kA/mehndi-booking-service/internal/service/status"
)

const msgInvalidPaymentID = "Invalid payment id"

type Handler struct {
	service StatusService
	logger  Logger
}

func NewHandler(service StatusService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /booking-status/{paymentIntentId}
// Polled by the client after the card payment until the booking is confirmed.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["paymentIntentId"]

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, status.ErrInvalidInput):
			h.logger.Warn("GET /booking-status/{id} - Invalid payment id: %q", id)
			handlers.RespondBadRequest(w, msgInvalidPaymentID)
		default:
			h.logger.Error("GET /booking-status/{id} - Failed to get status: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	handlers.RespondJSON(w, http.StatusOK, resp)
}
