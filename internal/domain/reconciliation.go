package domain

import "time"

// EscalationReason says why a paid booking needs an operator
type EscalationReason string

const (
	ReasonCalendarWriteFailed     EscalationReason = "calendar_write_failed"
	ReasonNotificationFailed      EscalationReason = "notification_failed"
	ReasonSlotConflictRefunded    EscalationReason = "slot_conflict_refunded"
	ReasonSlotConflictRefundFail  EscalationReason = "slot_conflict_refund_failed"
	ReasonMetadataInvalid         EscalationReason = "metadata_invalid"
	ReasonAmountMismatch          EscalationReason = "amount_mismatch"
	ReasonAvailabilityCheckFailed EscalationReason = "availability_check_failed"
	ReasonLedgerUpdateFailed      EscalationReason = "ledger_update_failed"
)

// ReconciliationItem is a paid booking that did not complete cleanly
type ReconciliationItem struct {
	ID              int64             `json:"id,omitempty"`
	PaymentIntentID string            `json:"paymentIntentId"`
	Reason          EscalationReason  `json:"reason"`
	Details         string            `json:"details"`
	Booking         map[string]string `json:"booking,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	ResolvedAt      *time.Time        `json:"resolvedAt,omitempty"`
}
