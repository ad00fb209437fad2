package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger is a dependency that can report readiness, e.g. *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// Response is the health payload
type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database,omitempty"`
}

type Handler struct {
	db     Pinger
	logger Logger
	now    func() time.Time
}

// NewHandler creates the handler. db may be nil when no ledger is configured.
func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{db: db, logger: logger, now: time.Now}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp := Response{Status: "OK", Timestamp: h.now().UTC()}
	if h.db == nil {
		handlers.RespondJSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("GET /health - Database ping failed: %v", err)
		resp.Status = "DEGRADED"
		resp.Database = "unreachable"
		handlers.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp.Database = "ok"
	handlers.RespondJSON(w, http.StatusOK, resp)
}
