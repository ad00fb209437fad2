package get_available_slots

import (
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/pkg/types"
)

// Request asks for the windows of one local day
type Request struct {
	Date time.Time // only the calendar date is used

	// Package and GuestHours size the booking; empty means the default duration
	Package    string
	GuestHours int
}

// Response lists every window of the day
type Response struct {
	Date    time.Time
	Windows []Window
}

// Window is the availability of one booking window
type Window struct {
	Label domain.SlotLabel
	From  types.TimeString
	To    types.TimeString

	// Available is true if at least one start inside the window is free
	Available bool
	// EarliestStart is the first free start, empty when none
	EarliestStart   types.TimeString
	DurationMinutes int
	// BlockedBy lists events overlapping a booking at the window start
	BlockedBy []BlockingEvent
}

// BlockingEvent is a calendar event in the way of a booking
type BlockingEvent struct {
	ID    string
	Start time.Time
	End   time.Time
}
