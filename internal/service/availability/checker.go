package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// Checker decides whether a time slot is free on the calendar. It never writes.
type Checker struct {
	calendar CalendarClient
	logger   Logger
}

func NewChecker(calendar CalendarClient, logger Logger) *Checker {
	return &Checker{
		calendar: calendar,
		logger:   logger,
	}
}

// Conflicts returns the events overlapping slot.
func (c *Checker) Conflicts(ctx context.Context, slot domain.TimeSlot) ([]domain.CalendarEvent, error) {
	events, err := c.calendar.ListEvents(ctx, slot.Start, slot.End, 0)
	if err != nil {
		c.logger.Error("Availability: failed to list events for %s - %s: %v",
			slot.Start.Format("2006-01-02 15:04"), slot.End.Format("15:04"), err)
		return nil, fmt.Errorf("%w: list events: %w", ErrCheckFailed, err)
	}

	conflicts := Conflicting(slot, events)
	if len(conflicts) > 0 {
		c.logger.Info("Availability: %d conflicting event(s) for %s", len(conflicts), slot.Start.Format("2006-01-02 15:04"))
	}
	return conflicts, nil
}

// IsSlotAvailable reports whether no event overlaps slot
func (c *Checker) IsSlotAvailable(ctx context.Context, slot domain.TimeSlot) (bool, error) {
	conflicts, err := c.Conflicts(ctx, slot)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// Conflicting filters events down to those overlapping slot.
// Events that end exactly when slot starts (or start when it ends) do not
// conflict. Cancelled events are ignored.
func Conflicting(slot domain.TimeSlot, events []domain.CalendarEvent) []domain.CalendarEvent {
	var out []domain.CalendarEvent
	for _, e := range events {
		if e.Cancelled() {
			continue
		}
		if slot.Overlaps(e.Interval()) {
			out = append(out, e)
		}
	}
	return out
}
