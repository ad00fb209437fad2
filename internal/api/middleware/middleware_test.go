package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/mehndi-booking-service/pkg/logger"
)

type observation struct {
	method, route, status string
}

type recordingMetrics struct {
	mu   sync.Mutex
	seen []observation
}

func (m *recordingMetrics) ObserveHTTP(method, route, status string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, observation{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	metrics := &recordingMetrics{}
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(metrics))
	router.HandleFunc("/cancel-event/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodDelete)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/cancel-event/abc", nil))

	require.Len(t, metrics.seen, 1)
	assert.Equal(t, observation{"DELETE", "/cancel-event/{id}", "404"}, metrics.seen[0])
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	policy := CORSPolicy{
		AllowedOrigins: []string{"http://localhost:5173", "https://amys-mehndi-booking.web.app"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "stripe-signature"},
	}
	called := false
	h := CORS(policy)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("preflight from allowed origin", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodOptions, "/book-event", nil)
		req.Header.Set("Origin", "https://amys-mehndi-booking.web.app")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.False(t, called)
		assert.Equal(t, "https://amys-mehndi-booking.web.app", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Content-Type, stripe-signature", rec.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("unknown origin gets no headers", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestBodyLimit(t *testing.T) {
	var readErr error
	h := BodyLimit(8)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/book-event", strings.NewReader("0123456789")))
	var maxErr *http.MaxBytesError
	assert.True(t, errors.As(readErr, &maxErr))
}

func TestLocalLimiter(t *testing.T) {
	l := NewLocalLimiter(2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "1.2.3.4")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "5.6.7.8")
	assert.True(t, ok, "budgets are per key")
}

type limiterFunc func(ctx context.Context, key string) (bool, error)

func (f limiterFunc) Allow(ctx context.Context, key string) (bool, error) { return f(ctx, key) }

func trusted(t *testing.T, cidrs ...string) TrustedProxies {
	t.Helper()
	out := make(TrustedProxies, 0, len(cidrs))
	for _, c := range cidrs {
		out = append(out, netip.MustParsePrefix(c))
	}
	return out
}

func TestTrustedProxies_ClientIP(t *testing.T) {
	cases := []struct {
		name    string
		proxies TrustedProxies
		remote  string
		xff     []string
		want    string
	}{
		{"no proxies ignores header", nil, "203.0.113.5:4000", []string{"9.9.9.9"}, "203.0.113.5"},
		{"untrusted peer ignores header", trusted(t, "10.0.0.0/8"), "203.0.113.5:4000", []string{"9.9.9.9"}, "203.0.113.5"},
		{"trusted peer", trusted(t, "10.0.0.0/8"), "10.0.0.2:4000", []string{"9.9.9.9"}, "9.9.9.9"},
		{"spoofed leftmost hop", trusted(t, "10.0.0.0/8"), "10.0.0.2:4000", []string{"1.1.1.1, 9.9.9.9"}, "9.9.9.9"},
		{"chain of proxies", trusted(t, "10.0.0.0/8"), "10.0.0.2:4000", []string{"9.9.9.9, 10.0.0.3", "10.0.0.4"}, "9.9.9.9"},
		{"garbage hop", trusted(t, "10.0.0.0/8"), "10.0.0.2:4000", []string{"not-an-ip"}, "10.0.0.2"},
		{"no header", trusted(t, "10.0.0.0/8"), "10.0.0.2:4000", nil, "10.0.0.2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/book-event", nil)
			req.RemoteAddr = tc.remote
			for _, v := range tc.xff {
				req.Header.Add("X-Forwarded-For", v)
			}
			assert.Equal(t, tc.want, tc.proxies.ClientIP(req))
		})
	}
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	proxies := trusted(t, "10.0.0.0/8")
	serve := func(l Limiter, failOpen bool) int {
		req := httptest.NewRequest(http.MethodPost, "/book-event", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("X-Forwarded-For", "1.2.3.4, 9.9.9.9")
		rec := httptest.NewRecorder()
		RateLimit(l, failOpen, proxies, logger.NewNop())(ok).ServeHTTP(rec, req)
		return rec.Code
	}

	var key string
	allow := limiterFunc(func(_ context.Context, k string) (bool, error) { key = k; return true, nil })
	deny := limiterFunc(func(context.Context, string) (bool, error) { return false, nil })
	broken := limiterFunc(func(context.Context, string) (bool, error) { return false, errors.New("down") })

	assert.Equal(t, http.StatusOK, serve(allow, false))
	assert.Equal(t, "9.9.9.9", key)
	assert.Equal(t, http.StatusTooManyRequests, serve(deny, false))
	assert.Equal(t, http.StatusOK, serve(broken, true))
	assert.Equal(t, http.StatusServiceUnavailable, serve(broken, false))
}

func TestRedisLimiter_UnreachableReturnsError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	ok, err := NewRedisLimiter(rdb, 5, time.Minute, "book").Allow(context.Background(), "1.2.3.4")
	assert.Error(t, err)
	assert.False(t, ok)
}
