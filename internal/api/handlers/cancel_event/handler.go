package cancel_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/mehndi-booking-service/internal/api/handlers"
	"github.com/m04kA/mehndi-booking-service/internal/service/events"
)

const (
	msgInvalidEventID = "Event id is required"
	msgNotFound       = "Event not found"
	msgUnavailable    = "Calendar is temporarily unavailable"
)

// CancelEventResponse is returned after a successful delete
type CancelEventResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /cancel-event/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.service.Cancel(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("DELETE /cancel-event/{id} - Invalid event id: %q", id)
			handlers.RespondBadRequest(w, msgInvalidEventID)

		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("DELETE /cancel-event/{id} - Event not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, events.ErrUnavailable):
			h.logger.Error("DELETE /cancel-event/{id} - Calendar unavailable: id=%s, error=%v", id, err)
			handlers.RespondUpstream(w, err, msgUnavailable)

		default:
			h.logger.Error("DELETE /cancel-event/{id} - Failed to cancel event: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /cancel-event/{id} - Event cancelled: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, CancelEventResponse{Message: "Event cancelled"})
}
