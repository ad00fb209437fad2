package confirm_payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// confirmedEvent builds the calendar entry for a paid booking
func confirmedEvent(b *domain.Booking, q domain.PriceQuote, paymentIntentID string, confirmedAt time.Time) domain.CalendarEvent {
	return domain.CalendarEvent{
		Summary:         fmt.Sprintf("CONFIRMED: %s for %s", b.Package, b.Name),
		Description:     eventDescription(b, q, paymentIntentID, confirmedAt),
		ColorID:         domain.ConfirmedEventColorID,
		Start:           b.Interval.Start,
		End:             b.Interval.End,
		PaymentIntentID: paymentIntentID,
	}
}

func eventDescription(b *domain.Booking, q domain.PriceQuote, paymentIntentID string, confirmedAt time.Time) string {
	var sb strings.Builder
	sb.WriteString("BOOKING CONFIRMED & PAID\n\n")
	fmt.Fprintf(&sb, "Customer: %s\n", b.Name)
	fmt.Fprintf(&sb, "Email: %s\n", b.Email)
	fmt.Fprintf(&sb, "Phone: %s\n", b.Phone)
	fmt.Fprintf(&sb, "Address: %s, %s, %s\n", b.Address, b.City, b.Postcode)
	fmt.Fprintf(&sb, "Package: %s\n", b.Package)
	if len(b.AdditionalPackages) > 0 {
		fmt.Fprintf(&sb, "Additional people: %d (%s)\n", len(b.AdditionalPackages), strings.Join(b.AdditionalPackages, ", "))
	}
	fmt.Fprintf(&sb, "Duration: %g hours\n", b.Interval.Duration().Hours())
	fmt.Fprintf(&sb, "Guest booking: %s\n", b.GuestInfo())
	fmt.Fprintf(&sb, "Callback: %s\n", b.CallbackInfo())
	fmt.Fprintf(&sb, "Total: %s, deposit paid: %s\n", q.Total, q.Deposit)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Payment ID: %s\n", paymentIntentID)
	fmt.Fprintf(&sb, "Booking confirmed at: %s", confirmedAt.Format("02/01/2006, 15:04:05"))
	return sb.String()
}
