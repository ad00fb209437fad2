package notifications

import "context"

// EmailSender sends a rendered template
type EmailSender interface {
	Send(ctx context.Context, templateID string, params map[string]string) error
}

// Logger is the logging interface of the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
