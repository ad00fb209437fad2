package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// AccessLog writes one line per request
func AccessLog(logger Logger, proxies TrustedProxies) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			logger.Info("%s %s - status=%d bytes=%d duration=%s request_id=%s ip=%s",
				r.Method, r.URL.Path, rec.Status(), rec.bytes, time.Since(start).Round(time.Millisecond),
				RequestIDFromContext(r.Context()), proxies.ClientIP(r))
		})
	}
}
