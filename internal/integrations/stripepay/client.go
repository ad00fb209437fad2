package stripepay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

const collaborator = "stripe"

// Client creates deposits, refunds them and verifies webhooks
type Client struct {
	api           *client.API
	webhookSecret string
	tolerance     time.Duration
	log           Logger
	metrics       Metrics
}

// NewClient builds a client with its own backend so the global stripe.Key is never touched
func NewClient(cfg Config, log Logger, metrics Metrics) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: secret key is required", ErrInvalidConfig)
	}
	if cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("%w: webhook secret is required", ErrInvalidConfig)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.WebhookTolerance <= 0 {
		cfg.WebhookTolerance = webhook.DefaultTolerance
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	backendCfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(cfg.MaxNetworkRetries),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}
	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	}

	return &Client{
		api:           client.New(cfg.SecretKey, backends),
		webhookSecret: cfg.WebhookSecret,
		tolerance:     cfg.WebhookTolerance,
		log:           log,
		metrics:       metrics,
	}, nil
}

// CreatePaymentIntent starts collecting a deposit. The same IdempotencyKey
// returns the same intent instead of creating a second one.
func (c *Client) CreatePaymentIntent(ctx context.Context, req IntentRequest) (_ *domain.PaymentIntent, err error) {
	defer c.observe("create_payment_intent", time.Now(), &err)

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrRequestFailed)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount.Pence()),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		c.log.Error("Stripe: create payment intent failed: %v", err)
		return nil, classify("create payment intent", err)
	}

	c.log.Info("Stripe: payment intent created id=%s amount=%d %s", pi.ID, pi.Amount, pi.Currency)
	return &domain.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       domain.Money(pi.Amount),
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}, nil
}

// Refund returns the full amount of a succeeded payment intent
func (c *Client) Refund(ctx context.Context, paymentIntentID, reason string) (_ string, err error) {
	defer c.observe("refund", time.Now(), &err)

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx
	params.AddMetadata("reason", reason)
	params.SetIdempotencyKey("refund-" + paymentIntentID)

	r, err := c.api.Refunds.New(params)
	if err != nil {
		c.log.Error("Stripe: refund for %s failed: %v", paymentIntentID, err)
		return "", classify("refund", err)
	}

	c.log.Info("Stripe: refund id=%s created for payment_intent=%s", r.ID, paymentIntentID)
	return r.ID, nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event
func (c *Client) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if strings.TrimSpace(signature) == "" {
		return nil, fmt.Errorf("%w: missing signature header", ErrInvalidSignature)
	}

	evt, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                c.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &WebhookEvent{ID: evt.ID, Type: string(evt.Type)}
	if out.Type != EventPaymentSucceeded {
		return out, nil
	}
	if evt.Data == nil {
		return nil, fmt.Errorf("%w: event %s has no data", ErrInvalidPayload, evt.ID)
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(evt.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("%w: decode payment intent: %v", ErrInvalidPayload, err)
	}
	if pi.ID == "" {
		return nil, fmt.Errorf("%w: payment intent without id", ErrInvalidPayload)
	}

	amount := pi.AmountReceived
	if amount == 0 {
		amount = pi.Amount
	}
	out.Confirmation = &domain.PaymentConfirmation{
		EventID:         evt.ID,
		PaymentIntentID: pi.ID,
		Amount:          domain.Money(amount),
		Currency:        string(pi.Currency),
		Metadata:        pi.Metadata,
	}
	return out, nil
}

func (c *Client) observe(operation string, start time.Time, err *error) {
	c.metrics.ObserveExternal(collaborator, operation, *err, time.Since(start))
}

func classify(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch {
		case stripeErr.Type == stripe.ErrorTypeCard:
			return fmt.Errorf("%w: %s: %s", ErrCardDeclined, op, stripeErr.Msg)
		case stripeErr.HTTPStatusCode == http.StatusTooManyRequests || stripeErr.HTTPStatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %w: %s: %s", ErrUnavailable, domain.ErrRetryable, op, stripeErr.Msg)
		default:
			return fmt.Errorf("%w: %s: %s", ErrRequestFailed, op, stripeErr.Msg)
		}
	}
	// no API error means the request never completed
	return fmt.Errorf("%w: %w: %s: %v", ErrUnavailable, domain.ErrRetryable, op, err)
}
