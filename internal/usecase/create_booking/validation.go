package create_booking

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/pkg/types"
)

const (
	msgRequired          = "Please fill in all required fields."
	msgNameLength        = "Name must be between 2 and 50 characters."
	msgNameChars         = "Name can only contain letters, spaces, hyphens, and apostrophes."
	msgEmail             = "Please enter a valid email address."
	msgPhone             = "Please enter a valid phone number."
	msgPostcode          = "Please enter a valid UK postcode."
	msgTerms             = "You must accept the terms and conditions to proceed."
	msgDate              = "Please enter a valid date (YYYY-MM-DD)."
	msgTime              = "Please enter a valid time (HH:MM)."
	msgStartDateTime     = "Start date and time do not match the selected date and time."
	msgPast              = "Please choose a date and time in the future."
	msgAdditionalPackage = "Please select a package for each additional person."
	msgCallbackTimes     = "Preferred callback times are too long."
)

var (
	nameRe     = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe    = regexp.MustCompile(`^\+?\d{7,15}$`)
	postcodeRe = regexp.MustCompile(`(?i)^[A-Z]{1,2}\d[A-Z\d]? ?\d[A-Z]{2}$`)
)

// validateRequest checks every field and collects all failures. On success it
// returns the booking with its interval resolved in the schedule location.
func validateRequest(req *Request, schedule *domain.Schedule, calc Calculator, policy Policy, now time.Time) (*domain.Booking, error) {
	verr := &domain.ValidationError{}

	b := &domain.Booking{
		Customer: domain.Customer{
			Name:     strings.TrimSpace(req.Name),
			Email:    strings.TrimSpace(req.Email),
			Phone:    strings.TrimSpace(req.Phone),
			Address:  strings.TrimSpace(req.Address),
			City:     strings.TrimSpace(req.City),
			Postcode: strings.ToUpper(strings.TrimSpace(req.Postcode)),
		},
		Package:           strings.TrimSpace(req.Package),
		GuestBooking:      req.GuestBooking,
		CallbackRequested: req.CallbackRequested,
		CallbackTimes:     strings.TrimSpace(req.CallbackTimes),
		TermsAccepted:     req.TermsAccepted,
	}
	date := strings.TrimSpace(req.Date)
	slot := strings.TrimSpace(req.Slot)
	clock := strings.TrimSpace(req.Time)

	required := []struct{ field, value string }{
		{"name", b.Name},
		{"email", b.Email},
		{"phone", b.Phone},
		{"address", b.Address},
		{"city", b.City},
		{"postcode", b.Postcode},
		{"package", b.Package},
		{"date", date},
		{"slot", slot},
		{"time", clock},
	}
	for _, r := range required {
		if r.value == "" {
			verr.Add(r.field, msgRequired)
		}
	}

	if b.Name != "" {
		if n := utf8.RuneCountInString(b.Name); n < domain.MinNameLength || n > domain.MaxNameLength {
			verr.Add("name", msgNameLength)
		} else if !nameRe.MatchString(b.Name) {
			verr.Add("name", msgNameChars)
		}
	}
	if b.Email != "" && !emailRe.MatchString(b.Email) {
		verr.Add("email", msgEmail)
	}
	if b.Phone != "" && !phoneRe.MatchString(b.Phone) {
		verr.Add("phone", msgPhone)
	}
	if b.Postcode != "" && !postcodeRe.MatchString(b.Postcode) {
		verr.Add("postcode", msgPostcode)
	}
	if b.Package != "" && !calc.Known(b.Package) {
		verr.Add("package", fmt.Sprintf("Unknown package %q.", b.Package))
	}

	validateAdditional(req.AdditionalPackages, calc, b, verr)

	if req.GuestBooking {
		if req.GuestHours < domain.MinGuestHours || req.GuestHours > domain.MaxGuestHours {
			verr.Add("guestDuration", fmt.Sprintf("Guest booking duration must be between %d and %d hours.",
				domain.MinGuestHours, domain.MaxGuestHours))
		}
		b.GuestHours = req.GuestHours
	}

	if policy.RequireTerms && !req.TermsAccepted {
		verr.Add("termsAccepted", msgTerms)
	}
	if utf8.RuneCountInString(b.CallbackTimes) > domain.MaxCallbackLength {
		verr.Add("callTimes", msgCallbackTimes)
	}

	start, ok := resolveStart(date, clock, req.StartDateTime, schedule.Location, verr)
	if ok {
		b.Date = schedule.LocalDay(start)
		b.StartTime = types.NewTimeString(start)
		b.Slot = domain.SlotLabel(slot)
		if slot != "" {
			verr.Merge(schedule.ValidateTimeWindow(start, b.Slot))
		}
		if !start.After(now) {
			verr.Add("date", msgPast)
		}
		b.Interval = domain.NewTimeSlot(start, schedule.Duration(b.Package, b.GuestBooking, b.GuestHours))
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return b, nil
}

func validateAdditional(packages []string, calc Calculator, b *domain.Booking, verr *domain.ValidationError) {
	if len(packages) > domain.MaxAdditionalPeople {
		verr.Add("additionalPeople", fmt.Sprintf("At most %d additional people can be booked.", domain.MaxAdditionalPeople))
		return
	}
	for i, p := range packages {
		p = strings.TrimSpace(p)
		field := "additionalPeople[" + strconv.Itoa(i) + "].package"
		switch {
		case p == "":
			verr.Add(field, msgAdditionalPackage)
		case !calc.Known(p):
			verr.Add(field, fmt.Sprintf("Unknown package %q.", p))
		}
		b.AdditionalPackages = append(b.AdditionalPackages, p)
	}
}

// resolveStart combines date and time on the local wall clock. startDateTime,
// when sent, must denote the same instant.
func resolveStart(date, clock, startDateTime string, loc *time.Location, verr *domain.ValidationError) (time.Time, bool) {
	ok := true

	day, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if date != "" && err != nil {
		verr.Add("date", msgDate)
	}
	ok = ok && err == nil

	ts, err := types.NewTimeStringFromString(clock)
	if clock != "" && err != nil {
		verr.Add("time", msgTime)
	}
	ok = ok && err == nil

	if !ok {
		return time.Time{}, false
	}

	start, err := ts.On(day, loc)
	if err != nil {
		verr.Add("time", msgTime)
		return time.Time{}, false
	}

	if s := strings.TrimSpace(startDateTime); s != "" {
		sent, err := time.Parse(time.RFC3339, s)
		if err != nil || !sent.Equal(start) {
			verr.Add("startDateTime", msgStartDateTime)
			return time.Time{}, false
		}
	}

	return start, true
}

// validateDeposit compares the client-side deposit, in pounds, with the quote
func validateDeposit(deposit *float64, quote domain.PriceQuote) error {
	if deposit == nil {
		return nil
	}
	if domain.Money(math.Round(*deposit*100)) != quote.Deposit {
		return domain.NewValidationError("deposit",
			fmt.Sprintf("Deposit does not match the quoted amount of %s.", quote.Deposit))
	}
	return nil
}
