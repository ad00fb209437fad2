package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

const (
	collaborator = "emailjs"
	sendPath     = "/api/v1.0/email/send"
)

// Client sends templated emails through EmailJS
type Client struct {
	baseURL    string
	serviceID  string
	publicKey  string
	privateKey string
	httpClient *http.Client
	log        Logger
	metrics    Metrics
}

// NewClient creates an EmailJS client
func NewClient(cfg Config, log Logger, metrics Metrics) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceID:  cfg.ServiceID,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log:     log,
		metrics: metrics,
	}
}

// Send renders templateID with params and sends it
func (c *Client) Send(ctx context.Context, templateID string, params map[string]string) (err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveExternal(collaborator, "send", err, time.Since(start)) }()

	body, err := json.Marshal(sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     templateID,
		UserID:         c.publicKey,
		AccessToken:    c.privateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return fmt.Errorf("%w: %w: template %s: %v", ErrUnavailable, domain.ErrRetryable, templateID, err)
		}
		return fmt.Errorf("%w: %w: failed to execute request: %v", ErrUnavailable, domain.ErrRetryable, err)
	}
	defer resp.Body.Close()

	// EmailJS answers with plain text
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusOK:
		c.log.Info("EmailJS: template %s sent", templateID)
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %w: status %d: %s", ErrUnavailable, domain.ErrRetryable, resp.StatusCode, string(respBody))
	default:
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(respBody))
	}
}
