package models

// Booking states reported to the client
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusConfirmed  = "confirmed"
	StatusEscalated  = "escalated"
	StatusRefunded   = "refunded"
)

// StatusResponse is the state of a booking after payment
type StatusResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Status          string `json:"status"`
	CalendarEventID string `json:"calendarEventId,omitempty"`
}
