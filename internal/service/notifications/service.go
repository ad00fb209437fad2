package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// Booking statuses shown in emails
const (
	StatusConfirmed = "CONFIRMED - Deposit received"
	StatusRefunded  = "CANCELLED - Slot no longer available, deposit refunded"
)

// Templates are the EmailJS template ids
type Templates struct {
	Owner    string
	Customer string
	// Refund is sent to the customer when a paid slot was lost. Empty disables it.
	Refund     string
	OwnerEmail string
}

// Service sends booking emails to the owner and the customer
type Service struct {
	sender    EmailSender
	templates Templates
	location  *time.Location
	logger    Logger
}

func NewService(sender EmailSender, templates Templates, location *time.Location, logger Logger) *Service {
	return &Service{
		sender:    sender,
		templates: templates,
		location:  location,
		logger:    logger,
	}
}

// BookingConfirmed emails the owner and then the customer. Both sends are
// attempted; the returned error joins every failure.
func (s *Service) BookingConfirmed(ctx context.Context, b *domain.Booking, q domain.PriceQuote) error {
	params := s.Params(b, q, StatusConfirmed)

	var errs []error
	if err := s.sender.Send(ctx, s.templates.Owner, params); err != nil {
		s.logger.Error("Notifications: owner email for %s failed: %v", b.Email, err)
		errs = append(errs, fmt.Errorf("owner email: %w", err))
	}
	if s.templates.Customer != "" {
		if err := s.sender.Send(ctx, s.templates.Customer, params); err != nil {
			s.logger.Error("Notifications: customer email to %s failed: %v", b.Email, err)
			errs = append(errs, fmt.Errorf("customer email: %w", err))
		}
	}
	return errors.Join(errs...)
}

// SlotLostRefunded tells the customer their deposit was refunded
func (s *Service) SlotLostRefunded(ctx context.Context, b *domain.Booking, q domain.PriceQuote) error {
	if s.templates.Refund == "" {
		s.logger.Warn("Notifications: no refund template configured, customer %s not emailed", b.Email)
		return nil
	}
	if err := s.sender.Send(ctx, s.templates.Refund, s.Params(b, q, StatusRefunded)); err != nil {
		return fmt.Errorf("refund email: %w", err)
	}
	return nil
}

// Params builds the template parameters for a booking
func (s *Service) Params(b *domain.Booking, q domain.PriceQuote, status string) map[string]string {
	start := b.Interval.Start.In(s.location)
	return map[string]string{
		"to_email":                b.Email,
		"owner_email":             s.templates.OwnerEmail,
		"customer_name":           b.Name,
		"customer_email":          b.Email,
		"phone":                   b.Phone,
		"address":                 b.Address,
		"city":                    b.City,
		"postcode":                b.Postcode,
		"package_type":            b.Package,
		"guest_booking_info":      b.GuestInfo(),
		"additional_people_count": strconv.Itoa(b.AdditionalCount()),
		"additional_people_info":  additionalInfo(b.AdditionalPackages),
		"call_back_info":          b.CallbackInfo(),
		"total_price":             decimal(q.Total),
		"total_deposit":           decimal(q.Deposit),
		"booking_date":            start.Format("02/01/2006"),
		"booking_time":            start.Format(domain.TimeFormat),
		"booking_slot":            string(b.Slot),
		"booking_status":          status,
	}
}

func additionalInfo(packages []string) string {
	if len(packages) == 0 {
		return "No additional guests"
	}
	lines := make([]string, len(packages))
	for i, p := range packages {
		lines[i] = fmt.Sprintf("Guest %d: %s", i+1, p)
	}
	return strings.Join(lines, "\n")
}

// decimal formats pence as 365.00
func decimal(m domain.Money) string {
	return strings.TrimPrefix(m.String(), "£")
}
