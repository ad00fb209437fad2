package list_events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/internal/service/events"
	"github.com/m04kA/mehndi-booking-service/internal/service/events/models"
	"github.com/m04kA/mehndi-booking-service/pkg/logger"
)

type mockService struct {
	ListUpcomingFunc func(ctx context.Context) (*models.EventListResponse, error)
}

func (m *mockService) ListUpcoming(ctx context.Context) (*models.EventListResponse, error) {
	return m.ListUpcomingFunc(ctx)
}

func serve(svc EventService) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
	return rec
}

func TestHandle_ReturnsBareArray(t *testing.T) {
	svc := &mockService{ListUpcomingFunc: func(context.Context) (*models.EventListResponse, error) {
		return &models.EventListResponse{
			Events: []models.EventResponse{{
				ID: "evt1", Date: "2026-07-15", StartTime: "10:00", EndTime: "13:00",
				Slot: "Morning", Summary: "CONFIRMED: Classic for Amy",
			}},
			Total: 1,
		}, nil
	}}

	rec := serve(svc)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "evt1", list[0].ID)
	assert.Equal(t, "Morning", list[0].Slot)
}

func TestHandle_EmptyIsArray(t *testing.T) {
	svc := &mockService{ListUpcomingFunc: func(context.Context) (*models.EventListResponse, error) {
		return &models.EventListResponse{}, nil
	}}

	rec := serve(svc)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	retryable := &mockService{ListUpcomingFunc: func(context.Context) (*models.EventListResponse, error) {
		return nil, fmt.Errorf("%w: %w: timeout", events.ErrUnavailable, domain.ErrRetryable)
	}}
	assert.Equal(t, http.StatusServiceUnavailable, serve(retryable).Code)

	internal := &mockService{ListUpcomingFunc: func(context.Context) (*models.EventListResponse, error) {
		return nil, fmt.Errorf("%w: bad credentials", events.ErrInternal)
	}}
	assert.Equal(t, http.StatusInternalServerError, serve(internal).Code)
}
