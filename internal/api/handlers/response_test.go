package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondValidation(t *testing.T) {
	verr := domain.NewValidationError("email", "Please enter a valid email address.")
	verr.Add("phone", "Please enter a valid phone number.")

	rec := httptest.NewRecorder()
	RespondValidation(rec, fmt.Errorf("wrapped: %w", verr))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, "Please enter a valid email address.", body.Message)
	assert.Len(t, body.Fields, 2)
}

func TestRespondUpstream(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondUpstream(rec, fmt.Errorf("calendar: %w", domain.ErrRetryable), "calendar unavailable")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.True(t, decode(t, rec).Retryable)

	rec = httptest.NewRecorder()
	RespondUpstream(rec, errors.New("403"), "calendar rejected the request")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.False(t, decode(t, rec).Retryable)
}

func TestRespondInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInternalError(rec)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decode(t, rec).Message)
}
