package payments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/pkg/psqlbuilder"
)

const table = "processed_payments"

var columns = []string{
	"payment_intent_id",
	"status",
	"calendar_event_id",
	"attempts",
	"last_error",
	"created_at",
	"updated_at",
}

// Repository is the ledger of confirmed payments. One row per payment intent
// makes webhook processing idempotent.
type Repository struct {
	db DBExecutor
}

// NewRepository creates the ledger repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Claim takes ownership of a payment for processing.
//
// A new payment is inserted as processing with attempts = 1. An existing row
// is reclaimed only while it is still processing and was last touched before
// staleBefore, which covers a worker that died or released the payment.
// claimed is false when another delivery owns the payment or it is finished;
// the returned record then shows its current state.
func (r *Repository) Claim(ctx context.Context, paymentIntentID string, staleBefore time.Time) (_ *domain.PaymentRecord, claimed bool, err error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns("payment_intent_id", "status", "attempts").
		Values(paymentIntentID, domain.PaymentProcessing, 1).
		Suffix(`ON CONFLICT (payment_intent_id) DO UPDATE
			SET attempts = processed_payments.attempts + 1, updated_at = NOW()
			WHERE processed_payments.status = ? AND processed_payments.updated_at < ?
			RETURNING `+columnList(), domain.PaymentProcessing, staleBefore).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: Claim - build insert query: %v", ErrBuildQuery, err)
	}

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if err == nil {
		return record, true, nil
	}
	if !errors.Is(err, ErrPaymentNotFound) {
		return nil, false, fmt.Errorf("%w: Claim: %v", ErrExecQuery, err)
	}

	existing, err := r.Get(ctx, paymentIntentID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Get returns the ledger row for a payment
func (r *Repository) Get(ctx context.Context, paymentIntentID string) (*domain.PaymentRecord, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"payment_intent_id": paymentIntentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Get: %v", ErrScanRow, err)
	}
	return record, nil
}

// MarkCompleted records the calendar event written for the payment
func (r *Repository) MarkCompleted(ctx context.Context, paymentIntentID, calendarEventID string) error {
	return r.update(ctx, "MarkCompleted", paymentIntentID, map[string]interface{}{
		"status":            domain.PaymentCompleted,
		"calendar_event_id": calendarEventID,
		"last_error":        nil,
		"updated_at":        squirrel.Expr("NOW()"),
	})
}

// MarkStatus moves the payment to a final status with a reason
func (r *Repository) MarkStatus(ctx context.Context, paymentIntentID string, status domain.PaymentStatus, lastError string) error {
	return r.update(ctx, "MarkStatus", paymentIntentID, map[string]interface{}{
		"status":     status,
		"last_error": nullString(lastError),
		"updated_at": squirrel.Expr("NOW()"),
	})
}

// Release gives up a claim so the next delivery can reclaim it at once
func (r *Repository) Release(ctx context.Context, paymentIntentID, lastError string) error {
	return r.update(ctx, "Release", paymentIntentID, map[string]interface{}{
		"last_error": nullString(lastError),
		"updated_at": squirrel.Expr("TIMESTAMPTZ 'epoch'"),
	})
}

func (r *Repository) update(ctx context.Context, op, paymentIntentID string, set map[string]interface{}) error {
	query, args, err := psqlbuilder.Update(table).
		SetMap(set).
		Where(squirrel.Eq{"payment_intent_id": paymentIntentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func scanRecord(row *sql.Row) (*domain.PaymentRecord, error) {
	var (
		p                    domain.PaymentRecord
		eventID, lastError   sql.NullString
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&p.PaymentIntentID,
		&p.Status,
		&eventID,
		&p.Attempts,
		&lastError,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	if eventID.Valid {
		p.CalendarEventID = &eventID.String
	}
	if lastError.Valid {
		p.LastError = &lastError.String
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

func columnList() string {
	return strings.Join(columns, ", ")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
