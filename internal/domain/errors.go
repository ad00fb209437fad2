package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Error classes. Every error leaving a use case wraps exactly one of these.
var (
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("slot conflict")
	ErrPayment       = errors.New("payment error")
	ErrIntegration   = errors.New("integration error")
	ErrConfiguration = errors.New("configuration error")

	// ErrRetryable marks failures the caller may retry unchanged
	ErrRetryable = errors.New("retryable")
)

// FieldError is a single rejected field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field errors
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError with one field error
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// Add appends a field error
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Merge appends the field errors of other
func (e *ValidationError) Merge(other *ValidationError) {
	if other != nil {
		e.Fields = append(e.Fields, other.Fields...)
	}
}

// Has reports whether field already has an error
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// OrNil returns nil when no field failed
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConfigurationError lists missing or invalid settings
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", strings.Join(e.Problems, "; "))
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// Retryable reports whether err is a transient failure: a timeout or an
// upstream failure explicitly marked with ErrRetryable.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRetryable) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
