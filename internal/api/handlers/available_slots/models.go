package available_slots

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	getAvailableSlots "github.com/m04kA/mehndi-booking-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date    string           `json:"date"`
	Windows []WindowResponse `json:"windows"`
}

// WindowResponse is one booking window of the day
type WindowResponse struct {
	Slot            string          `json:"slot"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	Available       bool            `json:"available"`
	EarliestStart   string          `json:"earliestStart,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	BlockedBy       []BlockingEvent `json:"blockedBy,omitempty"`
}

// BlockingEvent is an event in the way of a booking at the window start
type BlockingEvent struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ToUseCaseRequest parses the query parameters
func ToUseCaseRequest(date, pkg, guestHours string) (*getAvailableSlots.Request, error) {
	day, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}

	req := &getAvailableSlots.Request{Date: day, Package: pkg}
	if guestHours != "" {
		req.GuestHours, err = strconv.Atoi(guestHours)
		if err != nil {
			return nil, fmt.Errorf("parse guestHours: %w", err)
		}
	}
	return req, nil
}

// FromUseCaseResponse converts the use case result
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Windows: make([]WindowResponse, 0, len(resp.Windows)),
	}

	for _, w := range resp.Windows {
		wr := WindowResponse{
			Slot:            string(w.Label),
			From:            w.From.String(),
			To:              w.To.String(),
			Available:       w.Available,
			EarliestStart:   w.EarliestStart.String(),
			DurationMinutes: w.DurationMinutes,
		}
		for _, e := range w.BlockedBy {
			wr.BlockedBy = append(wr.BlockedBy, BlockingEvent{
				ID:    e.ID,
				Start: e.Start.Format(time.RFC3339),
				End:   e.End.Format(time.RFC3339),
			})
		}
		out.Windows = append(out.Windows, wr)
	}

	return out
}
