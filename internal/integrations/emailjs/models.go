package emailjs

import "time"

// DefaultBaseURL is the public EmailJS REST endpoint
const DefaultBaseURL = "https://api.emailjs.com"

// Config for the EmailJS client
type Config struct {
	BaseURL    string
	ServiceID  string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
}

// sendRequest is the body of POST /api/v1.0/email/send
type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Logger is the logging interface of the client
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics receives call timings
type Metrics interface {
	ObserveExternal(collaborator, operation string, err error, d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) ObserveExternal(string, string, error, time.Duration) {}
