package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	v := &ValidationError{}
	assert.NoError(t, v.OrNil())

	v.Add("name", "Name must be between 2 and 50 characters.")
	v.Add("email", "Please enter a valid email address.")

	err := v.OrNil()
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, v.Has("email"))
	assert.Contains(t, err.Error(), "name: Name must be between 2 and 50 characters.")
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(fmt.Errorf("%w: calendar 503", ErrRetryable)))
	assert.True(t, Retryable(fmt.Errorf("list events: %w", context.DeadlineExceeded)))
	assert.False(t, Retryable(errors.New("card declined")))
	assert.False(t, Retryable(nil))
}

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Problems: []string{"stripe.secret_key is required"}}
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "stripe.secret_key")
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "£175.00", Pounds(175).String())
	assert.Equal(t, "£0.05", Money(5).String())
	assert.Equal(t, "-£10.00", Pounds(-10).String())
}
