package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/mehndi-booking-service/pkg/types"
)

// ErrInvalidMetadata is returned when payment metadata cannot be turned back into a booking
var ErrInvalidMetadata = errors.New("invalid booking metadata")

// Payment providers cap metadata values at 500 characters
const maxMetadataValue = 500

const packageSeparator = "|"

// Metadata keys
const (
	MetaName               = "customer_name"
	MetaEmail              = "customer_email"
	MetaPhone              = "phone"
	MetaAddress            = "address"
	MetaCity               = "city"
	MetaPostcode           = "postcode"
	MetaPackage            = "package"
	MetaAdditionalPackages = "additional_packages"
	MetaGuestHours         = "guest_hours"
	MetaDate               = "date"
	MetaSlot               = "slot"
	MetaTime               = "time"
	MetaStart              = "start"
	MetaEnd                = "end"
	MetaCallback           = "callback"
	MetaCallbackTimes      = "callback_times"
	MetaTotalPence         = "total_pence"
	MetaDepositPence       = "deposit_pence"
)

// EncodeMetadata flattens a booking and its quote into payment metadata
func EncodeMetadata(b *Booking, q PriceQuote) map[string]string {
	md := map[string]string{
		MetaName:         truncate(b.Name),
		MetaEmail:        truncate(b.Email),
		MetaPhone:        truncate(b.Phone),
		MetaAddress:      truncate(b.Address),
		MetaCity:         truncate(b.City),
		MetaPostcode:     truncate(b.Postcode),
		MetaPackage:      truncate(b.Package),
		MetaDate:         b.Date.Format(DateFormat),
		MetaSlot:         string(b.Slot),
		MetaTime:         b.StartTime.String(),
		MetaStart:        b.Interval.Start.UTC().Format(time.RFC3339),
		MetaEnd:          b.Interval.End.UTC().Format(time.RFC3339),
		MetaCallback:     strconv.FormatBool(b.CallbackRequested),
		MetaTotalPence:   strconv.FormatInt(q.Total.Pence(), 10),
		MetaDepositPence: strconv.FormatInt(q.Deposit.Pence(), 10),
	}
	if len(b.AdditionalPackages) > 0 {
		md[MetaAdditionalPackages] = truncate(strings.Join(b.AdditionalPackages, packageSeparator))
	}
	if b.GuestBooking {
		md[MetaGuestHours] = strconv.Itoa(b.GuestHours)
	}
	if b.CallbackTimes != "" {
		md[MetaCallbackTimes] = truncate(b.CallbackTimes)
	}
	return md
}

// DecodeMetadata rebuilds the booking and quote totals from payment metadata.
// Times are returned in loc.
func DecodeMetadata(md map[string]string, loc *time.Location) (*Booking, PriceQuote, error) {
	var missing []string
	get := func(key string) string {
		v, ok := md[key]
		if !ok || v == "" {
			missing = append(missing, key)
		}
		return v
	}

	b := &Booking{
		Customer: Customer{
			Name:     get(MetaName),
			Email:    get(MetaEmail),
			Phone:    get(MetaPhone),
			Address:  get(MetaAddress),
			City:     get(MetaCity),
			Postcode: get(MetaPostcode),
		},
		Package:       get(MetaPackage),
		Slot:          SlotLabel(get(MetaSlot)),
		StartTime:     types.TimeString(get(MetaTime)),
		CallbackTimes: md[MetaCallbackTimes],
	}
	date := get(MetaDate)
	start := get(MetaStart)
	end := get(MetaEnd)
	total := get(MetaTotalPence)
	deposit := get(MetaDepositPence)

	if len(missing) > 0 {
		return nil, PriceQuote{}, fmt.Errorf("%w: missing %s", ErrInvalidMetadata, strings.Join(missing, ", "))
	}

	var err error
	if b.Date, err = time.ParseInLocation(DateFormat, date, loc); err != nil {
		return nil, PriceQuote{}, fmt.Errorf("%w: date: %v", ErrInvalidMetadata, err)
	}
	if b.Interval.Start, err = time.Parse(time.RFC3339, start); err != nil {
		return nil, PriceQuote{}, fmt.Errorf("%w: start: %v", ErrInvalidMetadata, err)
	}
	if b.Interval.End, err = time.Parse(time.RFC3339, end); err != nil {
		return nil, PriceQuote{}, fmt.Errorf("%w: end: %v", ErrInvalidMetadata, err)
	}
	if !b.Interval.End.After(b.Interval.Start) {
		return nil, PriceQuote{}, fmt.Errorf("%w: end %s is not after start %s", ErrInvalidMetadata, end, start)
	}
	b.Interval = b.Interval.In(loc)

	if v := md[MetaAdditionalPackages]; v != "" {
		b.AdditionalPackages = strings.Split(v, packageSeparator)
	}
	if v, ok := md[MetaGuestHours]; ok {
		if b.GuestHours, err = strconv.Atoi(v); err != nil {
			return nil, PriceQuote{}, fmt.Errorf("%w: guest_hours: %v", ErrInvalidMetadata, err)
		}
		b.GuestBooking = true
	}
	b.CallbackRequested, _ = strconv.ParseBool(md[MetaCallback])
	b.TermsAccepted = true

	var q PriceQuote
	totalPence, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return nil, PriceQuote{}, fmt.Errorf("%w: total_pence: %v", ErrInvalidMetadata, err)
	}
	depositPence, err := strconv.ParseInt(deposit, 10, 64)
	if err != nil {
		return nil, PriceQuote{}, fmt.Errorf("%w: deposit_pence: %v", ErrInvalidMetadata, err)
	}
	q.Total = Money(totalPence)
	q.Deposit = Money(depositPence)

	return b, q, nil
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxMetadataValue {
		return s
	}
	r := []rune(s)
	return string(r[:maxMetadataValue])
}
