package emailjs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/pkg/logger"
)

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1.0/email/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body sendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "service_x", body.ServiceID)
		assert.Equal(t, "template_owner", body.TemplateID)
		assert.Equal(t, "public_key", body.UserID)
		assert.Equal(t, "private_key", body.AccessToken)
		assert.Equal(t, "Priya Shah", body.TemplateParams["customer_name"])

		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	c := NewClient(Config{
		BaseURL:    srv.URL,
		ServiceID:  "service_x",
		PublicKey:  "public_key",
		PrivateKey: "private_key",
		Timeout:    time.Second,
	}, logger.NewNop(), nil)

	err := c.Send(context.Background(), "template_owner", map[string]string{"customer_name": "Priya Shah"})
	assert.NoError(t, err)
}

func TestSend_Errors(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		target    error
		retryable bool
	}{
		{"bad template", http.StatusBadRequest, ErrRejected, false},
		{"forbidden", http.StatusForbidden, ErrRejected, false},
		{"throttled", http.StatusTooManyRequests, ErrUnavailable, true},
		{"server error", http.StatusBadGateway, ErrUnavailable, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte("The template ID is invalid"))
			}))
			defer srv.Close()

			c := NewClient(Config{BaseURL: srv.URL}, logger.NewNop(), nil)
			err := c.Send(context.Background(), "template_owner", nil)
			assert.ErrorIs(t, err, tc.target)
			assert.Equal(t, tc.retryable, domain.Retryable(err))
		})
	}
}

func TestSend_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond}, logger.NewNop(), nil)
	err := c.Send(context.Background(), "template_owner", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, domain.Retryable(err))
}
