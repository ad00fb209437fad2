package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/mehndi-booking-service/internal/api/middleware"
)

// Handlers are the endpoints of the service
type Handlers struct {
	BookEvent      http.HandlerFunc
	Webhook        http.HandlerFunc
	WebhookAlive   http.HandlerFunc
	ListEvents     http.HandlerFunc
	AvailableSlots http.HandlerFunc
	CancelEvent    http.HandlerFunc
	BookingOptions http.HandlerFunc
	BookingStatus  http.HandlerFunc
	Health         http.HandlerFunc
}

// Options configure the middleware around the routes
type Options struct {
	Logger middleware.Logger

	// Metrics is nil when metrics are disabled
	Metrics        middleware.Metrics
	MetricsPath    string
	MetricsHandler http.Handler

	CORS         middleware.CORSPolicy
	MaxBodyBytes int64

	// TrustedProxies may set X-Forwarded-For, empty trusts none
	TrustedProxies middleware.TrustedProxies

	// BookingLimiter throttles POST /book-event, nil disables it
	BookingLimiter  middleware.Limiter
	LimiterFailOpen bool
}

// NewRouter registers every route. CORS, request id and access logging wrap
// the router itself so preflights and unmatched paths pass through them too.
func NewRouter(h Handlers, opts Options) http.Handler {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}
	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	book := http.Handler(h.BookEvent)
	if opts.BookingLimiter != nil {
		book = middleware.RateLimit(opts.BookingLimiter, opts.LimiterFailOpen, opts.TrustedProxies, opts.Logger)(book)
	}
	r.Handle("/book-event", book).Methods(http.MethodPost)

	r.HandleFunc("/webhook", h.Webhook).Methods(http.MethodPost)
	r.HandleFunc("/webhook", h.WebhookAlive).Methods(http.MethodGet)
	r.HandleFunc("/events", h.ListEvents).Methods(http.MethodGet)
	r.HandleFunc("/available-slots", h.AvailableSlots).Methods(http.MethodGet)
	r.HandleFunc("/cancel-event/{id}", h.CancelEvent).Methods(http.MethodDelete)
	r.HandleFunc("/booking-options", h.BookingOptions).Methods(http.MethodGet)
	r.HandleFunc("/booking-status/{paymentIntentId}", h.BookingStatus).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	var handler http.Handler = r
	if opts.MaxBodyBytes > 0 {
		handler = middleware.BodyLimit(opts.MaxBodyBytes)(handler)
	}
	handler = middleware.CORS(opts.CORS)(handler)
	handler = middleware.AccessLog(opts.Logger, opts.TrustedProxies)(handler)
	return middleware.RequestID(handler)
}
