package domain

import "time"

// CalendarEvent is an event on the shared calendar.
// All-day events span whole local days: Start is midnight of the first day and
// End is midnight after the last day.
type CalendarEvent struct {
	ID              string
	Summary         string
	Description     string
	ColorID         string
	HTMLLink        string
	Status          string
	Start           time.Time
	End             time.Time
	AllDay          bool
	PaymentIntentID string
}

// Cancelled events no longer block the calendar
func (e *CalendarEvent) Cancelled() bool {
	return e.Status == "cancelled"
}

// Interval returns the time the event occupies
func (e *CalendarEvent) Interval() TimeSlot {
	return TimeSlot{Start: e.Start, End: e.End}
}
