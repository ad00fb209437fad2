package domain

import "time"

// TimeSlot is a half-open interval [Start, End)
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// NewTimeSlot returns the slot starting at start and lasting d
func NewTimeSlot(start time.Time, d time.Duration) TimeSlot {
	return TimeSlot{Start: start, End: start.Add(d)}
}

// Overlaps reports whether two half-open intervals intersect.
// Intervals that only touch at a boundary do not overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// Duration returns End - Start
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// In returns the slot expressed in loc
func (s TimeSlot) In(loc *time.Location) TimeSlot {
	return TimeSlot{Start: s.Start.In(loc), End: s.End.In(loc)}
}
