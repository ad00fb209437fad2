package get_available_slots

import (
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/internal/service/availability"
	"github.com/m04kA/mehndi-booking-service/pkg/types"
)

// startStep is the spacing of candidate start times inside a window
const startStep = 30

// candidateStarts lists starts from w.From to w.To inclusive, startStep apart.
// On today's date starts that are already past are dropped.
func candidateStarts(w domain.Window, day time.Time, now time.Time, loc *time.Location) ([]time.Time, error) {
	from, err := w.From.Minutes()
	if err != nil {
		return nil, err
	}
	to, err := w.To.Minutes()
	if err != nil {
		return nil, err
	}

	starts := make([]time.Time, 0, (to-from)/startStep+1)
	for m := from; m <= to; m += startStep {
		ts, err := types.TimeString("00:00").AddMinutes(m)
		if err != nil {
			return nil, err
		}
		start, err := ts.On(day, loc)
		if err != nil {
			return nil, err
		}
		if !start.After(now) {
			continue
		}
		starts = append(starts, start)
	}
	return starts, nil
}

// evaluateWindow finds the earliest free start in w and the events blocking
// a booking at the window start
func evaluateWindow(
	w domain.Window,
	day time.Time,
	now time.Time,
	duration time.Duration,
	events []domain.CalendarEvent,
	loc *time.Location,
) (Window, error) {
	result := Window{
		Label:           w.Label,
		From:            w.From,
		To:              w.To,
		DurationMinutes: int(duration / time.Minute),
		BlockedBy:       []BlockingEvent{},
	}

	windowStart, err := w.From.On(day, loc)
	if err != nil {
		return Window{}, err
	}
	for _, e := range availability.Conflicting(domain.NewTimeSlot(windowStart, duration), events) {
		result.BlockedBy = append(result.BlockedBy, BlockingEvent{ID: e.ID, Start: e.Start, End: e.End})
	}

	starts, err := candidateStarts(w, day, now, loc)
	if err != nil {
		return Window{}, err
	}
	for _, start := range starts {
		if len(availability.Conflicting(domain.NewTimeSlot(start, duration), events)) == 0 {
			result.Available = true
			result.EarliestStart = types.NewTimeString(start)
			break
		}
	}
	return result, nil
}

// daySpan covers every booking that can start on day
func daySpan(windows []domain.Window, day time.Time, duration time.Duration, loc *time.Location) (domain.TimeSlot, error) {
	var span domain.TimeSlot
	for i, w := range windows {
		from, err := w.From.On(day, loc)
		if err != nil {
			return span, err
		}
		to, err := w.To.On(day, loc)
		if err != nil {
			return span, err
		}
		end := to.Add(duration)
		if i == 0 || from.Before(span.Start) {
			span.Start = from
		}
		if i == 0 || end.After(span.End) {
			span.End = end
		}
	}
	return span, nil
}
