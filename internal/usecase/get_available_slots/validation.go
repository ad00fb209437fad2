package get_available_slots

import (
	"fmt"
	"time"
)

// validateDate checks day against today and the booking horizon, both local midnights
func validateDate(day time.Time, today time.Time, lookaheadDays int) error {
	if day.Before(today) {
		return ErrInvalidDate
	}

	// lookaheadDays = 0 disables the horizon
	if lookaheadDays == 0 {
		return nil
	}

	maxDate := today.AddDate(0, 0, lookaheadDays)
	if day.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, lookaheadDays)
	}

	return nil
}
