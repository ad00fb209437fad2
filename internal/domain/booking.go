package domain

import (
	"strconv"
	"time"

	"github.com/m04kA/mehndi-booking-service/pkg/types"
)

// SlotLabel names a half-day booking window
type SlotLabel string

const (
	SlotMorning   SlotLabel = "Morning"
	SlotAfternoon SlotLabel = "Afternoon"
)

// Customer holds contact details from the booking form
type Customer struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	City     string
	Postcode string
}

// Booking is a validated booking request.
// Start and End are in the service location.
type Booking struct {
	Customer

	Package            string
	AdditionalPackages []string
	GuestBooking       bool
	GuestHours         int

	Date      time.Time
	Slot      SlotLabel
	StartTime types.TimeString
	Interval  TimeSlot

	CallbackRequested bool
	CallbackTimes     string
	TermsAccepted     bool
}

// AdditionalCount returns the number of additional people
func (b *Booking) AdditionalCount() int {
	return len(b.AdditionalPackages)
}

// HasAdditionalPackages returns true if any additional person picked a package
func (b *Booking) HasAdditionalPackages() bool {
	for _, p := range b.AdditionalPackages {
		if p != "" {
			return true
		}
	}
	return false
}

// GuestInfo describes the guest/party part of the booking for notifications
func (b *Booking) GuestInfo() string {
	if !b.GuestBooking || b.GuestHours <= 0 {
		return "No"
	}
	if b.GuestHours == 1 {
		return "1 hour"
	}
	return strconv.Itoa(b.GuestHours) + " hours"
}

// CallbackInfo describes the callback request for notifications
func (b *Booking) CallbackInfo() string {
	if !b.CallbackRequested {
		return "No callback requested"
	}
	if b.CallbackTimes == "" {
		return "Callback requested"
	}
	return "Callback requested: " + b.CallbackTimes
}
