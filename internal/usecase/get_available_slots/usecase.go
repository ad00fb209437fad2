package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// UseCase reports which booking windows of a day are still free
type UseCase struct {
	schedule     *domain.Schedule
	availability AvailabilityChecker
	packages     PackageCatalog
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case
func NewUseCase(schedule *domain.Schedule, availability AvailabilityChecker, packages PackageCatalog, logger Logger) *UseCase {
	return &UseCase{
		schedule:     schedule,
		availability: availability,
		packages:     packages,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute reads the calendar once for the whole day and evaluates each window
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Package != "" && !uc.packages.Known(req.Package) {
		return nil, fmt.Errorf("%w: unknown package %q", ErrInvalidInput, req.Package)
	}
	if req.GuestHours < 0 || req.GuestHours > domain.MaxGuestHours {
		return nil, fmt.Errorf("%w: guest hours must be between 0 and %d", ErrInvalidInput, domain.MaxGuestHours)
	}

	loc := uc.schedule.Location
	y, m, d := req.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	uc.logger.Info("GetAvailableSlots: date=%s, package=%q", day.Format(domain.DateFormat), req.Package)

	// 1. Horizon
	now := uc.timeProvider.Now()
	if err := validateDate(day, uc.schedule.LocalDay(now), uc.schedule.LookaheadDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 2. Events of the day
	duration := uc.schedule.Duration(req.Package, req.GuestHours > 0, req.GuestHours)
	span, err := daySpan(uc.schedule.Windows, day, duration, loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid windows: %v", err)
		return nil, fmt.Errorf("%w: day span: %v", ErrInternal, err)
	}
	events, err := uc.availability.Conflicts(ctx, span)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to read calendar: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	// 3. Each window
	resp := &Response{Date: day, Windows: make([]Window, 0, len(uc.schedule.Windows))}
	for _, w := range uc.schedule.Windows {
		result, err := evaluateWindow(w, day, now, duration, events, loc)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to evaluate %s: %v", w.Label, err)
			return nil, fmt.Errorf("%w: evaluate window: %v", ErrInternal, err)
		}
		resp.Windows = append(resp.Windows, result)
	}

	uc.logger.Info("GetAvailableSlots: %d event(s) on %s", len(events), day.Format(domain.DateFormat))
	return resp, nil
}
