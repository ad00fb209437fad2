package payment_webhook

import "time"

// WebhookResponse acknowledges a delivery
type WebhookResponse struct {
	Received bool   `json:"received"`
	Outcome  string `json:"outcome,omitempty"`
}

// AliveResponse answers GET /webhook
type AliveResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
