package googlecalendar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	c, err := NewClientWithOptions(context.Background(),
		Config{CalendarID: "primary", Location: loc, Timeout: 5 * time.Second},
		logger.NewNop(), nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestListEvents(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
		assert.Equal(t, "startTime", r.URL.Query().Get("orderBy"))
		assert.Equal(t, "2026-08-14T09:00:00Z", r.URL.Query().Get("timeMin"))

		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"id":      "evt-1",
					"status":  "confirmed",
					"summary": "CONFIRMED: Classic for Priya",
					"start":   map[string]string{"dateTime": "2026-08-14T10:00:00+01:00"},
					"end":     map[string]string{"dateTime": "2026-08-14T13:00:00+01:00"},
					"extendedProperties": map[string]interface{}{
						"private": map[string]string{PaymentIntentProperty: "pi_1"},
					},
				},
				{
					"id":    "holiday",
					"start": map[string]string{"date": "2026-08-15"},
					"end":   map[string]string{"date": "2026-08-16"},
				},
			},
		})
	})

	events, err := c.ListEvents(context.Background(),
		time.Date(2026, time.August, 14, 9, 0, 0, 0, time.UTC),
		time.Date(2026, time.August, 16, 9, 0, 0, 0, time.UTC), 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "pi_1", events[0].PaymentIntentID)
	assert.True(t, events[0].Start.Equal(time.Date(2026, time.August, 14, 9, 0, 0, 0, time.UTC)))
	assert.False(t, events[0].AllDay)

	assert.True(t, events[1].AllDay)
	assert.Equal(t, 15, events[1].Start.Day())
	assert.Equal(t, 0, events[1].Start.Hour())
	assert.Equal(t, 24*time.Hour, events[1].End.Sub(events[1].Start))
}

func TestListEvents_RespectsLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("maxResults"))
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"items": []map[string]interface{}{
				{"id": "a", "start": map[string]string{"dateTime": "2026-08-14T10:00:00Z"}, "end": map[string]string{"dateTime": "2026-08-14T11:00:00Z"}},
				{"id": "b", "start": map[string]string{"dateTime": "2026-08-14T12:00:00Z"}, "end": map[string]string{"dateTime": "2026-08-14T13:00:00Z"}},
			},
			"nextPageToken": "more",
		})
	})

	events, err := c.ListEvents(context.Background(), time.Now(), time.Now().Add(time.Hour), 1)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestInsertEvent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "10", body["colorId"])
		start := body["start"].(map[string]interface{})
		assert.Equal(t, "2026-08-14T10:00:00+01:00", start["dateTime"])
		assert.Equal(t, "Europe/London", start["timeZone"])
		props := body["extendedProperties"].(map[string]interface{})["private"].(map[string]interface{})
		assert.Equal(t, "pi_42", props[PaymentIntentProperty])

		writeJSON(t, w, http.StatusOK, map[string]string{"id": "new-id", "htmlLink": "https://calendar.example/new-id", "status": "confirmed"})
	})

	start := time.Date(2026, time.August, 14, 9, 0, 0, 0, time.UTC)
	ev, err := c.InsertEvent(context.Background(), domain.CalendarEvent{
		Summary:         "CONFIRMED: Classic for Priya",
		ColorID:         domain.ConfirmedEventColorID,
		Start:           start,
		End:             start.Add(3 * time.Hour),
		PaymentIntentID: "pi_42",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-id", ev.ID)
	assert.Equal(t, "https://calendar.example/new-id", ev.HTMLLink)
}

func TestInsertEvent_RejectsEmptyInterval(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	now := time.Now()
	_, err := c.InsertEvent(context.Background(), domain.CalendarEvent{Start: now, End: now})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestDeleteEvent_Errors(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		target    error
		retryable bool
	}{
		{"not found", http.StatusNotFound, ErrEventNotFound, false},
		{"gone", http.StatusGone, ErrEventNotFound, false},
		{"server error", http.StatusServiceUnavailable, ErrUnavailable, true},
		{"forbidden", http.StatusForbidden, ErrRequestFailed, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/calendars/primary/events/evt-9", r.URL.Path)
				writeJSON(t, w, tc.status, map[string]interface{}{
					"error": map[string]interface{}{"code": tc.status, "message": "nope"},
				})
			})

			err := c.DeleteEvent(context.Background(), "evt-9")
			assert.ErrorIs(t, err, tc.target)
			assert.Equal(t, tc.retryable, domain.Retryable(err))
		})
	}
}

func TestInsertEvent_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	c, err := NewClientWithOptions(context.Background(),
		Config{CalendarID: "primary", Location: loc, Timeout: 5 * time.Second},
		logger.NewNop(), nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	srv.Close()

	start := time.Date(2026, time.August, 14, 9, 0, 0, 0, loc)
	_, err = c.InsertEvent(context.Background(), domain.CalendarEvent{
		Summary: "CONFIRMED: Classic for Priya",
		Start:   start,
		End:     start.Add(3 * time.Hour),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, domain.Retryable(err))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		target    error
		retryable bool
	}{
		{"connection refused", &url.Error{Op: "Post", URL: "https://example.test", Err: errors.New("connect: connection refused")}, ErrUnavailable, true},
		{"canceled", context.Canceled, ErrUnavailable, true},
		{"deadline", context.DeadlineExceeded, ErrUnavailable, true},
		{"bad request", &googleapi.Error{Code: http.StatusBadRequest}, ErrRequestFailed, false},
		{"throttled", &googleapi.Error{Code: http.StatusTooManyRequests}, ErrUnavailable, true},
		{"other", errors.New("boom"), ErrRequestFailed, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classify("insert event", tc.err)
			assert.ErrorIs(t, err, tc.target)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, tc.retryable, domain.Retryable(err))
		})
	}
}

func TestFindByPaymentID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("privateExtendedProperty") {
		case PaymentIntentProperty + "=pi_found":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"items": []map[string]interface{}{{
					"id":    "evt-1",
					"start": map[string]string{"dateTime": "2026-08-14T10:00:00+01:00"},
					"end":   map[string]string{"dateTime": "2026-08-14T13:00:00+01:00"},
				}},
			})
		default:
			writeJSON(t, w, http.StatusOK, map[string]interface{}{"items": []interface{}{}})
		}
	})

	ev, err := c.FindByPaymentID(context.Background(), "pi_found")
	require.NoError(t, err)
	assert.Equal(t, "evt-1", ev.ID)

	_, err = c.FindByPaymentID(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}
