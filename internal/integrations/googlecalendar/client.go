package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

const (
	collaborator = "google_calendar"
	pageSize     = 250
)

var errStopPaging = errors.New("stop paging")

// Client reads and writes events on one Google calendar
type Client struct {
	svc        *calendar.Service
	calendarID string
	location   *time.Location
	timeout    time.Duration
	log        Logger
	metrics    Metrics
}

// NewClient authenticates with a service-account credentials file
func NewClient(ctx context.Context, cfg Config, log Logger, metrics Metrics) (*Client, error) {
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("%w: credentials file is required", ErrInvalidConfig)
	}
	return NewClientWithOptions(ctx, cfg, log, metrics,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(calendar.CalendarScope),
	)
}

// NewClientWithOptions builds a client from explicit API options
func NewClientWithOptions(ctx context.Context, cfg Config, log Logger, metrics Metrics, opts ...option.ClientOption) (*Client, error) {
	if cfg.CalendarID == "" {
		return nil, fmt.Errorf("%w: calendar id is required", ErrInvalidConfig)
	}
	if cfg.Location == nil {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidConfig)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create calendar service: %v", ErrInvalidConfig, err)
	}

	return &Client{
		svc:        svc,
		calendarID: cfg.CalendarID,
		location:   cfg.Location,
		timeout:    cfg.Timeout,
		log:        log,
		metrics:    metrics,
	}, nil
}

// ListEvents returns single events intersecting [timeMin, timeMax) ordered by
// start. limit <= 0 reads every page.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time, limit int) (_ []domain.CalendarEvent, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	defer c.observe("list_events", time.Now(), &err)

	size := int64(pageSize)
	if limit > 0 && limit < pageSize {
		size = int64(limit)
	}

	call := c.svc.Events.List(c.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(size)

	events := make([]domain.CalendarEvent, 0)
	err = call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			ev, convErr := c.toDomain(item)
			if convErr != nil {
				c.log.Warn("GoogleCalendar: skipping event id=%s: %v", item.Id, convErr)
				continue
			}
			events = append(events, ev)
			if limit > 0 && len(events) >= limit {
				return errStopPaging
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopPaging) {
		return nil, classify("list events", err)
	}
	err = nil

	return events, nil
}

// InsertEvent writes ev and returns it with the assigned id and link.
// A non-empty PaymentIntentID is stored as a private extended property.
func (c *Client) InsertEvent(ctx context.Context, ev domain.CalendarEvent) (_ domain.CalendarEvent, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	defer c.observe("insert_event", time.Now(), &err)

	if !ev.End.After(ev.Start) {
		return domain.CalendarEvent{}, fmt.Errorf("%w: end must be after start", ErrInvalidEvent)
	}

	item := &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		ColorId:     ev.ColorID,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.In(c.location).Format(time.RFC3339),
			TimeZone: c.location.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.In(c.location).Format(time.RFC3339),
			TimeZone: c.location.String(),
		},
	}
	if ev.PaymentIntentID != "" {
		item.ExtendedProperties = &calendar.EventExtendedProperties{
			Private: map[string]string{PaymentIntentProperty: ev.PaymentIntentID},
		}
	}

	created, err := c.svc.Events.Insert(c.calendarID, item).Context(ctx).Do()
	if err != nil {
		return domain.CalendarEvent{}, classify("insert event", err)
	}

	ev.ID = created.Id
	ev.HTMLLink = created.HtmlLink
	ev.Status = created.Status
	c.log.Info("GoogleCalendar: inserted event id=%s start=%s", created.Id, ev.Start.Format(time.RFC3339))
	return ev, nil
}

// DeleteEvent removes the event with id
func (c *Client) DeleteEvent(ctx context.Context, id string) (err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	defer c.observe("delete_event", time.Now(), &err)

	if err = c.svc.Events.Delete(c.calendarID, id).Context(ctx).Do(); err != nil {
		return classify("delete event", err)
	}
	c.log.Info("GoogleCalendar: deleted event id=%s", id)
	return nil
}

// FindByPaymentID returns the event written for a payment intent
func (c *Client) FindByPaymentID(ctx context.Context, paymentIntentID string) (_ *domain.CalendarEvent, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	defer c.observe("find_by_payment", time.Now(), &err)

	page, err := c.svc.Events.List(c.calendarID).
		PrivateExtendedProperty(PaymentIntentProperty + "=" + paymentIntentID).
		SingleEvents(true).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify("find event by payment", err)
	}

	for _, item := range page.Items {
		if item.Status == "cancelled" {
			continue
		}
		ev, convErr := c.toDomain(item)
		if convErr != nil {
			return nil, convErr
		}
		return &ev, nil
	}
	return nil, ErrEventNotFound
}

func (c *Client) toDomain(item *calendar.Event) (domain.CalendarEvent, error) {
	if item.Start == nil || item.End == nil {
		return domain.CalendarEvent{}, fmt.Errorf("%w: event %s has no start or end", ErrInvalidEvent, item.Id)
	}

	ev := domain.CalendarEvent{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		ColorID:     item.ColorId,
		HTMLLink:    item.HtmlLink,
		Status:      item.Status,
	}
	if item.ExtendedProperties != nil {
		ev.PaymentIntentID = item.ExtendedProperties.Private[PaymentIntentProperty]
	}

	var err error
	if item.Start.DateTime == "" {
		// all-day: dates are local, end date is exclusive
		ev.AllDay = true
		if ev.Start, err = time.ParseInLocation(domain.DateFormat, item.Start.Date, c.location); err != nil {
			return domain.CalendarEvent{}, fmt.Errorf("%w: start date %q: %v", ErrInvalidEvent, item.Start.Date, err)
		}
		if ev.End, err = time.ParseInLocation(domain.DateFormat, item.End.Date, c.location); err != nil {
			return domain.CalendarEvent{}, fmt.Errorf("%w: end date %q: %v", ErrInvalidEvent, item.End.Date, err)
		}
		return ev, nil
	}

	if ev.Start, err = time.Parse(time.RFC3339, item.Start.DateTime); err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("%w: start %q: %v", ErrInvalidEvent, item.Start.DateTime, err)
	}
	if ev.End, err = time.Parse(time.RFC3339, item.End.DateTime); err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("%w: end %q: %v", ErrInvalidEvent, item.End.DateTime, err)
	}
	ev.Start = ev.Start.In(c.location)
	ev.End = ev.End.In(c.location)
	return ev, nil
}

func (c *Client) observe(operation string, start time.Time, err *error) {
	c.metrics.ObserveExternal(collaborator, operation, *err, time.Since(start))
}

// classify maps API errors onto the package sentinels. Anything that is not
// an API response means the request never completed and may be retried.
func classify(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone:
			return fmt.Errorf("%w: %s: %w", ErrEventNotFound, op, err)
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %w: %s: %w", ErrUnavailable, domain.ErrRetryable, op, err)
		default:
			return fmt.Errorf("%w: %s: %w", ErrRequestFailed, op, err)
		}
	}

	var urlErr *url.Error
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.As(err, &urlErr),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %w: %s: %w", ErrUnavailable, domain.ErrRetryable, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrRequestFailed, op, err)
}
