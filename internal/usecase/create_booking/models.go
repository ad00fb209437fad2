package create_booking

import (
	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// Request is the booking form as submitted
type Request struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	City     string
	Postcode string

	Package            string
	AdditionalPackages []string
	GuestBooking       bool
	GuestHours         int

	Date          string // YYYY-MM-DD
	Slot          string // Morning | Afternoon
	Time          string // HH:MM
	StartDateTime string // optional RFC 3339, must agree with Date and Time

	CallbackRequested bool
	CallbackTimes     string
	TermsAccepted     bool

	// Deposit is the amount the client displayed, in pounds. Optional.
	Deposit *float64
}

// Response carries what the client needs to collect the deposit
type Response struct {
	PaymentIntentID string
	ClientSecret    string
	Quote           domain.PriceQuote
	Slot            domain.TimeSlot
}

// Policy holds the configurable booking rules
type Policy struct {
	RequireTerms bool
	Currency     string
}

// DefaultPolicy requires accepted terms and charges in GBP
func DefaultPolicy() Policy {
	return Policy{RequireTerms: true, Currency: domain.DefaultCurrency}
}
