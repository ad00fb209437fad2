package create_booking

import (
	"fmt"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

var (
	// ErrSlotNotAvailable is returned when an event already overlaps the requested slot
	ErrSlotNotAvailable = fmt.Errorf("create_booking: slot is not available: %w", domain.ErrConflict)

	// ErrPaymentDeclined is returned when the payment provider rejects the deposit
	ErrPaymentDeclined = fmt.Errorf("create_booking: payment declined: %w", domain.ErrPayment)

	// ErrUpstream is returned when the calendar or the payment provider fails
	ErrUpstream = fmt.Errorf("create_booking: upstream failure: %w", domain.ErrIntegration)
)
