package available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/mehndi-booking-service/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/mehndi-booking-service/internal/usecase/get_available_slots"
)

const (
	msgMissingDate         = "date is required"
	msgInvalidQuery        = "Invalid date format, expected YYYY-MM-DD"
	msgDateInPast          = "Please choose a date in the future."
	msgDateTooFar          = "This date is too far in the future to book online."
	msgInvalidInput        = "Unknown package or invalid guest hours"
	msgCalendarUnavailable = "Calendar is temporarily unavailable"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /available-slots
// Query params: date (required, YYYY-MM-DD), package, guestHours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dateStr := q.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, q.Get("package"), q.Get("guestHours"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Date in the past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-slots - Date too far: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrUnavailable):
			h.logger.Error("GET /available-slots - Calendar unavailable: date=%s, error=%v", dateStr, err)
			handlers.RespondUpstream(w, err, msgCalendarUnavailable)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Evaluated %d window(s) for %s", len(result.Windows), dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
