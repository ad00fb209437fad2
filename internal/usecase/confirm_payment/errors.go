package confirm_payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

var (
	// ErrInvalidInput is returned for a confirmation without a payment intent id
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrRetryLater is returned when the payment was left unprocessed and the
	// webhook should be delivered again
	ErrRetryLater = fmt.Errorf("confirm_payment: retry later: %w", domain.ErrRetryable)

	// ErrInProgress is returned while another delivery owns the payment
	ErrInProgress = fmt.Errorf("confirm_payment: payment is being processed: %w", domain.ErrRetryable)
)
