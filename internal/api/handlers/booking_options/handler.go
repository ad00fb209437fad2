package booking_options

import (
	"net/http"

	"github.com/m04kA/mehndi-booking-service/internal/api/handlers"
)

type Handler struct {
	service CatalogService
}

func NewHandler(service CatalogService) *Handler {
	return &Handler{service: service}
}

// Handle GET /booking-options
// Public endpoint, the form reads packages, prices and windows from it.
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	handlers.RespondJSON(w, http.StatusOK, h.service.Get())
}
