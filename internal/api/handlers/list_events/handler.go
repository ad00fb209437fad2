package list_events

import (
	"errors"
	"net/http"

	"github.com/m04kA/mehndi-booking-service/internal/api/handlers"
	"github.com/m04kA/mehndi-booking-service/internal/service/events"
	"github.com/m04kA/mehndi-booking-service/internal/service/events/models"
)

const msgUnavailable = "Failed to fetch events"

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

// Handle GET /events
// The body is a bare array so existing clients keep working.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListUpcoming(r.Context())
	if err != nil {
		if errors.Is(err, events.ErrUnavailable) {
			h.logger.Error("GET /events - Calendar unavailable: %v", err)
			handlers.RespondUpstream(w, err, msgUnavailable)
			return
		}
		h.logger.Error("GET /events - Failed to list events: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	list := result.Events
	if list == nil {
		list = []models.EventResponse{}
	}

	h.logger.Info("GET /events - Listed %d upcoming events", result.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
