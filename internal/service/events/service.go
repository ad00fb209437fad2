package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/internal/integrations/googlecalendar"
	"github.com/m04kA/mehndi-booking-service/internal/service/events/models"
)

// Service lists and cancels calendar bookings
type Service struct {
	calendar     CalendarClient
	schedule     *domain.Schedule
	timeProvider TimeProvider
	logger       Logger
}

func NewService(calendar CalendarClient, schedule *domain.Schedule, logger Logger) *Service {
	return &Service{
		calendar:     calendar,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListUpcoming returns events of the next LookaheadDays whose local start
// time falls inside a booking window. At most domain.MaxListedEvents are read.
func (s *Service) ListUpcoming(ctx context.Context) (*models.EventListResponse, error) {
	now := s.timeProvider.Now()
	until := now.AddDate(0, 0, s.schedule.LookaheadDays)

	events, err := s.calendar.ListEvents(ctx, now, until, domain.MaxListedEvents)
	if err != nil {
		s.logger.Error("ListUpcoming: calendar error: %v", err)
		return nil, s.wrap("ListUpcoming", err)
	}

	resp := &models.EventListResponse{Events: make([]models.EventResponse, 0, len(events))}
	for _, e := range events {
		if e.Cancelled() || e.AllDay {
			continue
		}
		slot, ok := s.schedule.WindowAt(e.Start)
		if !ok {
			continue
		}
		resp.Events = append(resp.Events, models.FromDomainEvent(e, slot, s.schedule.Location))
	}
	resp.Total = len(resp.Events)

	s.logger.Info("ListUpcoming: %d of %d events inside booking windows", resp.Total, len(events))
	return resp, nil
}

// Cancel deletes the event with id
func (s *Service) Cancel(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	if err := s.calendar.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, googlecalendar.ErrEventNotFound) {
			s.logger.Warn("Cancel: event id=%s not found", id)
			return ErrEventNotFound
		}
		s.logger.Error("Cancel: failed to delete event id=%s: %v", id, err)
		return s.wrap("Cancel", err)
	}

	s.logger.Info("Cancel: event id=%s deleted", id)
	return nil
}

func (s *Service) wrap(op string, err error) error {
	if domain.Retryable(err) {
		return fmt.Errorf("%w: %w: %s: %v", ErrUnavailable, domain.ErrRetryable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
