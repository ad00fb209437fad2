package reconciliation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/pkg/psqlbuilder"
)

const table = "reconciliation_items"

// Repository stores paid bookings that need an operator
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Escalate records the item. It is the durable sink of the escalation fanout.
func (r *Repository) Escalate(ctx context.Context, item domain.ReconciliationItem) error {
	_, err := r.Create(ctx, item)
	return err
}

// Create inserts an item and returns it with id and creation time
func (r *Repository) Create(ctx context.Context, item domain.ReconciliationItem) (*domain.ReconciliationItem, error) {
	var booking interface{}
	if len(item.Booking) > 0 {
		raw, err := json.Marshal(item.Booking)
		if err != nil {
			return nil, fmt.Errorf("%w: Create - encode booking: %v", ErrBuildQuery, err)
		}
		booking = string(raw)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("payment_intent_id", "reason", "details", "booking").
		Values(item.PaymentIntentID, item.Reason, item.Details, booking).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&item.ID, &item.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return &item, nil
}

// ListOpen returns unresolved items, oldest first
func (r *Repository) ListOpen(ctx context.Context, limit int) ([]domain.ReconciliationItem, error) {
	builder := psqlbuilder.Select("id", "payment_intent_id", "reason", "details", "booking", "created_at", "resolved_at").
		From(table).
		Where(squirrel.Eq{"resolved_at": nil}).
		OrderBy("created_at ASC", "id ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpen - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpen - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.ReconciliationItem, 0)
	for rows.Next() {
		var (
			item       domain.ReconciliationItem
			booking    []byte
			resolvedAt sql.NullTime
		)
		if err := rows.Scan(&item.ID, &item.PaymentIntentID, &item.Reason, &item.Details, &booking, &item.CreatedAt, &resolvedAt); err != nil {
			return nil, fmt.Errorf("%w: ListOpen: %v", ErrScanRow, err)
		}
		if len(booking) > 0 {
			if err := json.Unmarshal(booking, &item.Booking); err != nil {
				return nil, fmt.Errorf("%w: ListOpen - decode booking of item %d: %v", ErrScanRow, item.ID, err)
			}
		}
		if resolvedAt.Valid {
			item.ResolvedAt = &resolvedAt.Time
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpen - iterate: %v", ErrScanRow, err)
	}
	return items, nil
}

// Resolve closes an open item
func (r *Repository) Resolve(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update(table).
		Set("resolved_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "resolved_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %v", ErrExecQuery, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - rows affected: %v", ErrExecQuery, err)
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}
