package models

import (
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// EventResponse is an upcoming booking on the calendar
type EventResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Slot      string `json:"slot"`
	Summary   string `json:"summary"`
}

// EventListResponse is the list of upcoming bookings
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
}

// FromDomainEvent converts an event to its response in loc
func FromDomainEvent(e domain.CalendarEvent, slot domain.SlotLabel, loc *time.Location) EventResponse {
	start := e.Start.In(loc)
	end := e.End.In(loc)
	return EventResponse{
		ID:        e.ID,
		Date:      start.Format(domain.DateFormat),
		StartTime: start.Format(domain.TimeFormat),
		EndTime:   end.Format(domain.TimeFormat),
		Slot:      string(slot),
		Summary:   e.Summary,
	}
}
