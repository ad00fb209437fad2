package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/mehndi-booking-service/pkg/types"
)

// Window is an allowed range of start times, both ends inclusive
type Window struct {
	Label SlotLabel
	From  types.TimeString
	To    types.TimeString
}

// Contains reports whether minutes since midnight falls inside the window
func (w Window) Contains(minutes int) bool {
	from, errFrom := w.From.Minutes()
	to, errTo := w.To.Minutes()
	if errFrom != nil || errTo != nil {
		return false
	}
	return minutes >= from && minutes <= to
}

// Message is the rejection text for a start outside the window
func (w Window) Message() string {
	return fmt.Sprintf("For %s slot, time must be between %s and %s", w.Label, w.From, w.To)
}

// DefaultWindows are the business opening windows
func DefaultWindows() []Window {
	return []Window{
		{Label: SlotMorning, From: "09:00", To: "11:00"},
		{Label: SlotAfternoon, From: "16:00", To: "18:00"},
	}
}

// Schedule holds the time rules of the business
type Schedule struct {
	Location         *time.Location
	Windows          []Window
	DefaultDuration  time.Duration
	PackageDurations map[string]time.Duration
	LookaheadDays    int
}

// DefaultSchedule returns the Europe/London schedule with the standard windows
func DefaultSchedule() (*Schedule, error) {
	loc, err := time.LoadLocation(DefaultLocation)
	if err != nil {
		return nil, fmt.Errorf("%w: load location %s: %v", ErrConfiguration, DefaultLocation, err)
	}
	return &Schedule{
		Location:        loc,
		Windows:         DefaultWindows(),
		DefaultDuration: DefaultBookingDuration,
		LookaheadDays:   DefaultLookaheadDays,
	}, nil
}

// Window returns the window for label
func (s *Schedule) Window(label SlotLabel) (Window, bool) {
	for _, w := range s.Windows {
		if w.Label == label {
			return w, true
		}
	}
	return Window{}, false
}

// ValidateTimeWindow checks the local wall-clock time of start against the
// window named by label. start is converted to the schedule location first.
func (s *Schedule) ValidateTimeWindow(start time.Time, label SlotLabel) *ValidationError {
	w, ok := s.Window(label)
	if !ok {
		return NewValidationError("slot", fmt.Sprintf("unknown slot %q", label))
	}
	local := start.In(s.Location)
	if !w.Contains(local.Hour()*60 + local.Minute()) {
		return NewValidationError("time", w.Message())
	}
	return nil
}

// WindowAt returns the window containing the local start time of t
func (s *Schedule) WindowAt(t time.Time) (SlotLabel, bool) {
	local := t.In(s.Location)
	minutes := local.Hour()*60 + local.Minute()
	for _, w := range s.Windows {
		if w.Contains(minutes) {
			return w.Label, true
		}
	}
	return "", false
}

// Duration returns how long a booking occupies the calendar.
// Guest/party bookings last at least their booked hours.
func (s *Schedule) Duration(pkg string, guest bool, guestHours int) time.Duration {
	d := s.DefaultDuration
	if override, ok := s.PackageDurations[pkg]; ok && override > 0 {
		d = override
	}
	if guest {
		if g := time.Duration(guestHours) * time.Hour; g > d {
			d = g
		}
	}
	return d
}

// LocalDay returns midnight of t's calendar day in the schedule location
func (s *Schedule) LocalDay(t time.Time) time.Time {
	y, m, d := t.In(s.Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.Location)
}
