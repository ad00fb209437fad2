package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/internal/integrations/stripepay"
	"github.com/m04kA/mehndi-booking-service/internal/service/pricing"
)

// idempotencyNamespace scopes the deterministic payment idempotency keys
var idempotencyNamespace = uuid.MustParse("6f1c2a7e-3b0d-4c5e-9a8f-2d4b6e8c0a11")

// idempotencyWindow is how long an identical submission reuses its intent
const idempotencyWindow = 10 * time.Minute

// UseCase validates a booking, checks the slot and starts the deposit payment.
// It never writes to the calendar.
type UseCase struct {
	schedule     *domain.Schedule
	calculator   Calculator
	availability AvailabilityChecker
	payments     PaymentClient
	metrics      Metrics
	policy       Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case
func NewUseCase(
	schedule *domain.Schedule,
	calculator Calculator,
	availability AvailabilityChecker,
	payments PaymentClient,
	metrics Metrics,
	policy Policy,
	logger Logger,
) *UseCase {
	if policy.Currency == "" {
		policy.Currency = domain.DefaultCurrency
	}
	return &UseCase{
		schedule:     schedule,
		calculator:   calculator,
		availability: availability,
		payments:     payments,
		metrics:      metrics,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs Received -> Validated -> SlotChecked -> PaymentInitiated
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: email=%s, package=%s, date=%s, slot=%s, time=%s",
		req.Email, req.Package, req.Date, req.Slot, req.Time)

	// 1. Validation, no external call on invalid input
	now := uc.timeProvider.Now()
	booking, err := validateRequest(req, uc.schedule, uc.calculator, uc.policy, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.BookingOutcome(domain.OutcomeValidationFailed)
		return nil, err
	}

	// 2. Server-side price
	quote, err := uc.calculator.Quote(pricing.Selection{
		Package:            booking.Package,
		AdditionalPackages: booking.AdditionalPackages,
		GuestHours:         booking.GuestHours,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: quote failed: %v", err)
		uc.metrics.BookingOutcome(domain.OutcomeValidationFailed)
		return nil, domain.NewValidationError("package", err.Error())
	}
	if err := validateDeposit(req.Deposit, quote); err != nil {
		uc.logger.Warn("CreateBooking: client deposit %.2f, quoted %s", *req.Deposit, quote.Deposit)
		uc.metrics.BookingOutcome(domain.OutcomeValidationFailed)
		return nil, err
	}

	// 3. Slot check
	conflicts, err := uc.availability.Conflicts(ctx, booking.Interval)
	if err != nil {
		uc.logger.Error("CreateBooking: availability check failed: %v", err)
		return nil, fmt.Errorf("%w: check availability: %w", ErrUpstream, err)
	}
	if len(conflicts) > 0 {
		uc.logger.Warn("CreateBooking: slot %s already booked (event id=%s)",
			booking.Interval.Start.Format("2006-01-02 15:04"), conflicts[0].ID)
		uc.metrics.BookingOutcome(domain.OutcomeConflict)
		return nil, ErrSlotNotAvailable
	}

	// 4. Deposit payment intent, the booking travels as metadata
	metadata := domain.EncodeMetadata(booking, quote)
	intentReq := stripepay.IntentRequest{
		Amount:         quote.Deposit,
		Currency:       uc.policy.Currency,
		Description:    fmt.Sprintf("Deposit: %s on %s %s", booking.Package, booking.Date.Format(domain.DateFormat), booking.StartTime),
		ReceiptEmail:   booking.Email,
		Metadata:       metadata,
		IdempotencyKey: idempotencyKey(metadata, now),
	}
	intent, err := uc.payments.CreatePaymentIntent(ctx, intentReq)
	if err == nil && !intent.Open() {
		uc.logger.Warn("CreateBooking: replayed payment intent id=%s is %s, creating a new one", intent.ID, intent.Status)
		intentReq.IdempotencyKey += "-" + intent.ID
		intent, err = uc.payments.CreatePaymentIntent(ctx, intentReq)
		if err == nil && !intent.Open() {
			err = fmt.Errorf("payment intent id=%s is %s", intent.ID, intent.Status)
		}
	}
	if err != nil {
		uc.metrics.BookingOutcome(domain.OutcomePaymentFailed)
		if errors.Is(err, stripepay.ErrCardDeclined) {
			uc.logger.Warn("CreateBooking: payment declined for %s: %v", booking.Email, err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
		}
		uc.logger.Error("CreateBooking: failed to create payment intent: %v", err)
		return nil, fmt.Errorf("%w: create payment intent: %w", ErrUpstream, err)
	}

	uc.metrics.BookingOutcome(domain.OutcomePaymentInitiated)
	uc.logger.Info("CreateBooking: payment intent id=%s for %s, deposit %s, total %s",
		intent.ID, booking.Email, quote.Deposit, quote.Total)

	return &Response{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Quote:           quote,
		Slot:            booking.Interval,
	}, nil
}

// idempotencyKey is stable for identical submissions inside one
// idempotencyWindow, so a double-submitted form gets the existing intent back.
func idempotencyKey(metadata map[string]string, now time.Time) string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(metadata[k])
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "window=%d\n", now.Truncate(idempotencyWindow).Unix())
	return "book-" + uuid.NewSHA1(idempotencyNamespace, []byte(sb.String())).String()
}
