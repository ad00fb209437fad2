package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

var (
	// ErrInvalidDate is returned for a date before today
	ErrInvalidDate = fmt.Errorf("get_available_slots: date is in the past: %w", domain.ErrValidation)

	// ErrDateTooFarInFuture is returned for a date beyond the booking horizon
	ErrDateTooFarInFuture = fmt.Errorf("get_available_slots: date is too far in the future: %w", domain.ErrValidation)

	// ErrInvalidInput is returned for a missing date or unknown package
	ErrInvalidInput = fmt.Errorf("get_available_slots: invalid input data: %w", domain.ErrValidation)

	// ErrUnavailable is returned when the calendar cannot be read
	ErrUnavailable = fmt.Errorf("get_available_slots: calendar unavailable: %w", domain.ErrIntegration)

	// ErrInternal is returned for any other failure
	ErrInternal = errors.New("get_available_slots: internal error")
)
