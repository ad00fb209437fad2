package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

const msgInternalError = "Internal server error"

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Message   string              `json:"message"`
	Fields    []domain.FieldError `json:"fields,omitempty"`
	Retryable bool                `json:"retryable,omitempty"`
}

// RespondJSON writes data as JSON with status
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError writes an error message with status
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondValidation writes 400 with every rejected field. The message is the
// first field error so simple clients can show it as is.
func RespondValidation(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) == 0 {
		RespondBadRequest(w, err.Error())
		return
	}
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: verr.Fields[0].Message,
		Fields:  verr.Fields,
	})
}

// RespondUpstream writes 503 for a transient collaborator failure and 502 otherwise
func RespondUpstream(w http.ResponseWriter, err error, message string) {
	if domain.Retryable(err) {
		RespondJSON(w, http.StatusServiceUnavailable, ErrorResponse{Message: message, Retryable: true})
		return
	}
	RespondError(w, http.StatusBadGateway, message)
}

// DecodeJSON decodes the request body into v
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
