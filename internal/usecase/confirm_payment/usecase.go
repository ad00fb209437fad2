package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/internal/integrations/googlecalendar"
)

const (
	refundReasonSlotConflict = "slot_conflict"

	// markAttempts bounds writes of a final ledger status
	markAttempts = 2
)

// UseCase finishes a paid booking: PaymentConfirmed -> CalendarWritten ->
// NotificationsSent. Every payment ends written, refunded or escalated.
type UseCase struct {
	schedule     *domain.Schedule
	ledger       Ledger
	calendar     CalendarClient
	availability AvailabilityChecker
	refunder     Refunder
	notifier     Notifier
	escalator    Escalator
	metrics      Metrics
	options      Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case
func NewUseCase(
	schedule *domain.Schedule,
	ledger Ledger,
	calendar CalendarClient,
	availability AvailabilityChecker,
	refunder Refunder,
	notifier Notifier,
	escalator Escalator,
	metrics Metrics,
	options Options,
	logger Logger,
) *UseCase {
	defaults := DefaultOptions()
	if options.MaxAttempts <= 0 {
		options.MaxAttempts = defaults.MaxAttempts
	}
	if options.ClaimTimeout <= 0 {
		options.ClaimTimeout = defaults.ClaimTimeout
	}
	return &UseCase{
		schedule:     schedule,
		ledger:       ledger,
		calendar:     calendar,
		availability: availability,
		refunder:     refunder,
		notifier:     notifier,
		escalator:    escalator,
		metrics:      metrics,
		options:      options,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// run carries the state of one confirmation
type run struct {
	id       string
	record   *domain.PaymentRecord
	metadata map[string]string
}

// Execute processes a verified payment_intent.succeeded confirmation.
// A returned error means nothing durable happened and the webhook must be
// redelivered; all other failures end in an escalation.
func (uc *UseCase) Execute(ctx context.Context, c *domain.PaymentConfirmation) (*Response, error) {
	if c == nil || strings.TrimSpace(c.PaymentIntentID) == "" {
		return nil, fmt.Errorf("%w: payment intent id is required", ErrInvalidInput)
	}
	uc.logger.Info("ConfirmPayment: payment_intent=%s event=%s amount=%s",
		c.PaymentIntentID, c.EventID, c.Amount)

	// 1. Idempotency
	now := uc.timeProvider.Now()
	record, claimed, err := uc.ledger.Claim(ctx, c.PaymentIntentID, now.Add(-uc.options.ClaimTimeout))
	if err != nil {
		uc.logger.Error("ConfirmPayment: ledger claim for %s failed: %v", c.PaymentIntentID, err)
		return nil, fmt.Errorf("%w: claim: %v", ErrRetryLater, err)
	}
	if !claimed {
		if record.IsFinal() {
			uc.logger.Info("ConfirmPayment: payment_intent=%s already %s", c.PaymentIntentID, record.Status)
			uc.metrics.BookingOutcome(domain.OutcomeDuplicate)
			resp := &Response{PaymentIntentID: c.PaymentIntentID, Outcome: OutcomeDuplicate}
			if record.CalendarEventID != nil {
				resp.CalendarEventID = *record.CalendarEventID
			}
			return resp, nil
		}
		uc.logger.Warn("ConfirmPayment: payment_intent=%s is being processed by another delivery", c.PaymentIntentID)
		return nil, ErrInProgress
	}

	r := &run{id: c.PaymentIntentID, record: record, metadata: c.Metadata}

	// 2. Booking from metadata
	booking, quote, err := domain.DecodeMetadata(c.Metadata, uc.schedule.Location)
	if err != nil {
		return uc.escalate(ctx, r, domain.ReasonMetadataInvalid, err.Error())
	}
	if c.Amount != quote.Deposit {
		return uc.escalate(ctx, r, domain.ReasonAmountMismatch,
			fmt.Sprintf("paid %s, quoted deposit %s", c.Amount, quote.Deposit))
	}

	// 3. An earlier delivery may have written the event before failing
	existing, err := uc.calendar.FindByPaymentID(ctx, r.id)
	switch {
	case err == nil:
		uc.logger.Warn("ConfirmPayment: event id=%s already written for payment_intent=%s", existing.ID, r.id)
		return uc.complete(ctx, r, booking, quote, existing.ID)
	case !errors.Is(err, googlecalendar.ErrEventNotFound):
		return uc.retryOrEscalate(ctx, r, domain.ReasonCalendarWriteFailed, fmt.Errorf("find event: %w", err))
	}

	// 4. Just-in-time availability
	conflicts, err := uc.availability.Conflicts(ctx, booking.Interval)
	if err != nil {
		return uc.retryOrEscalate(ctx, r, domain.ReasonAvailabilityCheckFailed, err)
	}
	if len(conflicts) > 0 {
		return uc.refund(ctx, r, booking, quote, conflicts)
	}

	// 5. Calendar write
	created, err := uc.calendar.InsertEvent(ctx, confirmedEvent(booking, quote, r.id, now.In(uc.schedule.Location)))
	if err != nil {
		return uc.retryOrEscalate(ctx, r, domain.ReasonCalendarWriteFailed, fmt.Errorf("insert event: %w", err))
	}
	uc.logger.Info("ConfirmPayment: event id=%s written for payment_intent=%s (%s)", created.ID, r.id, created.HTMLLink)

	return uc.complete(ctx, r, booking, quote, created.ID)
}

// complete records the written event and sends the emails
func (uc *UseCase) complete(ctx context.Context, r *run, b *domain.Booking, q domain.PriceQuote, eventID string) (*Response, error) {
	if err := uc.ledger.MarkCompleted(ctx, r.id, eventID); err != nil {
		uc.logger.Error("ConfirmPayment: mark completed for %s failed: %v", r.id, err)
		uc.release(ctx, r, err)
		return nil, fmt.Errorf("%w: mark completed: %v", ErrRetryLater, err)
	}

	if err := uc.notifier.BookingConfirmed(ctx, b, q); err != nil {
		uc.logger.Error("ConfirmPayment: notifications for %s failed: %v", r.id, err)
		uc.sendEscalation(ctx, r, domain.ReasonNotificationFailed, err.Error())
	}

	uc.metrics.BookingOutcome(domain.OutcomeConfirmed)
	return &Response{PaymentIntentID: r.id, Outcome: OutcomeConfirmed, CalendarEventID: eventID}, nil
}

// refund returns the deposit of a booking whose slot was taken after payment
func (uc *UseCase) refund(ctx context.Context, r *run, b *domain.Booking, q domain.PriceQuote, conflicts []domain.CalendarEvent) (*Response, error) {
	ids := make([]string, 0, len(conflicts))
	for _, e := range conflicts {
		ids = append(ids, e.ID)
	}
	uc.logger.Warn("ConfirmPayment: slot for payment_intent=%s taken by %s", r.id, strings.Join(ids, ","))

	refundID, err := uc.refunder.Refund(ctx, r.id, refundReasonSlotConflict)
	if err != nil {
		return uc.escalate(ctx, r, domain.ReasonSlotConflictRefundFail,
			fmt.Sprintf("slot taken by %s, refund failed: %v", strings.Join(ids, ","), err))
	}

	details := fmt.Sprintf("slot taken by %s, refund %s issued", strings.Join(ids, ","), refundID)
	if err := uc.escalator.Escalate(ctx, uc.item(r, domain.ReasonSlotConflictRefunded, details)); err != nil {
		uc.release(ctx, r, err)
		return nil, fmt.Errorf("%w: escalate refund: %v", ErrRetryLater, err)
	}
	uc.markFinal(ctx, r, domain.PaymentRefunded, details)

	if err := uc.notifier.SlotLostRefunded(ctx, b, q); err != nil {
		uc.logger.Error("ConfirmPayment: refund email for %s failed: %v", r.id, err)
		uc.sendEscalation(ctx, r, domain.ReasonNotificationFailed, "refund email: "+err.Error())
	}

	uc.metrics.BookingOutcome(domain.OutcomeRefunded)
	return &Response{PaymentIntentID: r.id, Outcome: OutcomeRefunded}, nil
}

// retryOrEscalate releases the claim for a transient failure while attempts
// remain, and escalates otherwise
func (uc *UseCase) retryOrEscalate(ctx context.Context, r *run, reason domain.EscalationReason, cause error) (*Response, error) {
	if domain.Retryable(cause) && r.record.Attempts < uc.options.MaxAttempts {
		uc.logger.Warn("ConfirmPayment: transient failure for %s (attempt %d/%d): %v",
			r.id, r.record.Attempts, uc.options.MaxAttempts, cause)
		uc.release(ctx, r, cause)
		uc.metrics.BookingOutcome(domain.OutcomeRetry)
		return nil, fmt.Errorf("%w: %v", ErrRetryLater, cause)
	}
	return uc.escalate(ctx, r, reason, cause.Error())
}

// escalate records the payment as needing an operator
func (uc *UseCase) escalate(ctx context.Context, r *run, reason domain.EscalationReason, details string) (*Response, error) {
	uc.logger.Error("ConfirmPayment: escalating payment_intent=%s: %s: %s", r.id, reason, details)

	if err := uc.escalator.Escalate(ctx, uc.item(r, reason, details)); err != nil {
		uc.release(ctx, r, err)
		return nil, fmt.Errorf("%w: escalate: %v", ErrRetryLater, err)
	}
	uc.markFinal(ctx, r, domain.PaymentEscalated, string(reason)+": "+details)

	uc.metrics.BookingOutcome(domain.OutcomeEscalated)
	return &Response{PaymentIntentID: r.id, Outcome: OutcomeEscalated}, nil
}

// sendEscalation reports a problem that does not change the payment status
func (uc *UseCase) sendEscalation(ctx context.Context, r *run, reason domain.EscalationReason, details string) {
	if err := uc.escalator.Escalate(ctx, uc.item(r, reason, details)); err != nil {
		uc.logger.Error("ConfirmPayment: escalation %s for %s not delivered: %v", reason, r.id, err)
		return
	}
	uc.metrics.BookingOutcome(domain.OutcomeEscalated)
}

// markFinal moves the ledger row to a final status. A row that stays
// processing is reported as its own escalation.
func (uc *UseCase) markFinal(ctx context.Context, r *run, status domain.PaymentStatus, details string) {
	var err error
	for attempt := 1; attempt <= markAttempts; attempt++ {
		if err = uc.ledger.MarkStatus(ctx, r.id, status, details); err == nil {
			return
		}
		uc.logger.Error("ConfirmPayment: mark %s for %s failed (attempt %d/%d): %v",
			status, r.id, attempt, markAttempts, err)
	}
	uc.sendEscalation(ctx, r, domain.ReasonLedgerUpdateFailed,
		fmt.Sprintf("ledger row left %s, set status to %s: %v", domain.PaymentProcessing, status, err))
}

func (uc *UseCase) release(ctx context.Context, r *run, cause error) {
	if err := uc.ledger.Release(ctx, r.id, cause.Error()); err != nil {
		uc.logger.Error("ConfirmPayment: release of %s failed: %v", r.id, err)
	}
}

func (uc *UseCase) item(r *run, reason domain.EscalationReason, details string) domain.ReconciliationItem {
	return domain.ReconciliationItem{
		PaymentIntentID: r.id,
		Reason:          reason,
		Details:         details,
		Booking:         r.metadata,
		CreatedAt:       uc.timeProvider.Now(),
	}
}
