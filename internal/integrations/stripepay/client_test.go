package stripepay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/pkg/logger"
)

const testWebhookSecret = "whsec_test_secret"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	cfg := Config{
		SecretKey:     "sk_test_123",
		WebhookSecret: testWebhookSecret,
		Timeout:       5 * time.Second,
	}
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		cfg.BaseURL = srv.URL
	}
	c, err := NewClient(cfg, logger.NewNop(), nil)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestNewClient_RequiresSecrets(t *testing.T) {
	_, err := NewClient(Config{WebhookSecret: "whsec"}, logger.NewNop(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewClient(Config{SecretKey: "sk"}, logger.NewNop(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCreatePaymentIntent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "booking-key-1", r.Header.Get("Idempotency-Key"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "7000", r.PostForm.Get("amount"))
		assert.Equal(t, "gbp", r.PostForm.Get("currency"))
		assert.Equal(t, "Priya Shah", r.PostForm.Get("metadata[customer_name]"))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":            "pi_123",
			"object":        "payment_intent",
			"amount":        7000,
			"currency":      "gbp",
			"client_secret": "pi_123_secret_abc",
			"status":        "requires_payment_method",
		})
	})

	pi, err := c.CreatePaymentIntent(context.Background(), IntentRequest{
		Amount:         domain.Pounds(70),
		Currency:       "GBP",
		Metadata:       map[string]string{"customer_name": "Priya Shah"},
		IdempotencyKey: "booking-key-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", pi.ID)
	assert.Equal(t, "pi_123_secret_abc", pi.ClientSecret)
	assert.Equal(t, domain.Pounds(70), pi.Amount)
	assert.True(t, pi.Open())
}

func TestCreatePaymentIntent_Errors(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		errType   string
		target    error
		retryable bool
	}{
		{"card declined", http.StatusPaymentRequired, "card_error", ErrCardDeclined, false},
		{"bad request", http.StatusBadRequest, "invalid_request_error", ErrRequestFailed, false},
		{"server error", http.StatusInternalServerError, "api_error", ErrUnavailable, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, map[string]interface{}{
					"error": map[string]string{"type": tc.errType, "message": "failure"},
				})
			})

			_, err := c.CreatePaymentIntent(context.Background(), IntentRequest{Amount: domain.Pounds(50), Currency: "gbp"})
			assert.ErrorIs(t, err, tc.target)
			assert.Equal(t, tc.retryable, domain.Retryable(err))
		})
	}
}

func TestCreatePaymentIntent_RejectsZeroAmount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.CreatePaymentIntent(context.Background(), IntentRequest{Currency: "gbp"})
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestRefund(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/refunds", r.URL.Path)
		assert.Equal(t, "refund-pi_9", r.Header.Get("Idempotency-Key"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "pi_9", r.PostForm.Get("payment_intent"))
		assert.Equal(t, "slot_conflict", r.PostForm.Get("metadata[reason]"))

		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "re_1", "object": "refund"})
	})

	id, err := c.Refund(context.Background(), "pi_9", "slot_conflict")
	require.NoError(t, err)
	assert.Equal(t, "re_1", id)
}

func signedPayload(t *testing.T, body map[string]interface{}, secret string) ([]byte, string) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})
	return payload, signed.Header
}

func succeededEvent() map[string]interface{} {
	return map[string]interface{}{
		"id":     "evt_1",
		"object": "event",
		"type":   EventPaymentSucceeded,
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"id":              "pi_123",
				"object":          "payment_intent",
				"amount":          7000,
				"amount_received": 7000,
				"currency":        "gbp",
				"metadata":        map[string]string{"customer_name": "Priya Shah"},
			},
		},
	}
}

func TestParseWebhook_PaymentSucceeded(t *testing.T) {
	c := newTestClient(t, nil)
	payload, header := signedPayload(t, succeededEvent(), testWebhookSecret)

	evt, err := c.ParseWebhook(payload, header)
	require.NoError(t, err)
	require.NotNil(t, evt.Confirmation)
	assert.Equal(t, "evt_1", evt.ID)
	assert.Equal(t, "pi_123", evt.Confirmation.PaymentIntentID)
	assert.Equal(t, domain.Pounds(70), evt.Confirmation.Amount)
	assert.Equal(t, "Priya Shah", evt.Confirmation.Metadata["customer_name"])
}

func TestParseWebhook_OtherEventType(t *testing.T) {
	c := newTestClient(t, nil)
	payload, header := signedPayload(t, map[string]interface{}{
		"id": "evt_2", "object": "event", "type": "charge.refunded",
		"data": map[string]interface{}{"object": map[string]interface{}{"id": "ch_1"}},
	}, testWebhookSecret)

	evt, err := c.ParseWebhook(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "charge.refunded", evt.Type)
	assert.Nil(t, evt.Confirmation)
}

func TestParseWebhook_RejectsBadSignature(t *testing.T) {
	c := newTestClient(t, nil)

	payload, header := signedPayload(t, succeededEvent(), "whsec_other")
	_, err := c.ParseWebhook(payload, header)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	payload, header = signedPayload(t, succeededEvent(), testWebhookSecret)
	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-2] = ' '
	_, err = c.ParseWebhook(tampered, header)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = c.ParseWebhook(payload, "")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
