package book_event

import (
	"time"

	createBooking "github.com/m04kA/mehndi-booking-service/internal/usecase/create_booking"
)

// BookEventRequest HTTP request model
type BookEventRequest struct {
	Name             string             `json:"name"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone"`
	Address          string             `json:"address"`
	City             string             `json:"city"`
	Postcode         string             `json:"postcode"`
	PackageType      string             `json:"packageType"`
	AdditionalPeople []AdditionalPerson `json:"additionalPeople,omitempty"`
	IsGuestBooking   bool               `json:"isGuestBooking"`
	GuestDuration    int                `json:"guestDuration,omitempty"`
	Date             string             `json:"date"`          // "2026-07-15"
	Slot             string             `json:"slot"`          // "Morning"
	Time             string             `json:"time"`          // "10:00"
	StartDateTime    string             `json:"startDateTime"` // RFC 3339, optional
	CallRequested    bool               `json:"callRequested"`
	CallTimes        string             `json:"callTimes,omitempty"`
	TermsAccepted    bool               `json:"termsAccepted"`
	DepositAmount    *float64           `json:"depositAmount,omitempty"` // pounds
}

// AdditionalPerson is one more person on the booking
type AdditionalPerson struct {
	PackageType string `json:"packageType"`
}

// BookEventResponse HTTP response model
type BookEventResponse struct {
	Message         string `json:"message"`
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	TotalPrice      string `json:"totalPrice"`
	DepositAmount   string `json:"depositAmount"`
	DiscountApplied bool   `json:"discountApplied"`
	StartDateTime   string `json:"startDateTime"`
	EndDateTime     string `json:"endDateTime"`
}

// ToUseCaseRequest converts the HTTP request to the use case model
func (r *BookEventRequest) ToUseCaseRequest() *createBooking.Request {
	additional := make([]string, 0, len(r.AdditionalPeople))
	for _, p := range r.AdditionalPeople {
		additional = append(additional, p.PackageType)
	}

	return &createBooking.Request{
		Name:               r.Name,
		Email:              r.Email,
		Phone:              r.Phone,
		Address:            r.Address,
		City:               r.City,
		Postcode:           r.Postcode,
		Package:            r.PackageType,
		AdditionalPackages: additional,
		GuestBooking:       r.IsGuestBooking,
		GuestHours:         r.GuestDuration,
		Date:               r.Date,
		Slot:               r.Slot,
		Time:               r.Time,
		StartDateTime:      r.StartDateTime,
		CallbackRequested:  r.CallRequested,
		CallbackTimes:      r.CallTimes,
		TermsAccepted:      r.TermsAccepted,
		Deposit:            r.DepositAmount,
	}
}

// FromUseCaseResponse converts the use case result to the HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookEventResponse {
	return &BookEventResponse{
		Message:         "Payment initiated",
		ClientSecret:    resp.ClientSecret,
		PaymentIntentID: resp.PaymentIntentID,
		TotalPrice:      resp.Quote.Total.String(),
		DepositAmount:   resp.Quote.Deposit.String(),
		DiscountApplied: resp.Quote.DiscountApplied,
		StartDateTime:   resp.Slot.Start.Format(time.RFC3339),
		EndDateTime:     resp.Slot.End.Format(time.RFC3339),
	}
}
