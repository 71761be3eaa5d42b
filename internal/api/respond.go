package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/judahn02/Professional-Development/internal/models"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the standard error body: a stable machine-readable
// code plus a human message.
func writeError(w http.ResponseWriter, status int, kind models.ErrorKind, message string) {
	writeJSON(w, status, &models.Error{Kind: kind, Message: message})
}

// writeServiceError maps a typed service error onto its HTTP status.
// Untyped errors degrade to a 500 query_error.
func writeServiceError(w http.ResponseWriter, err error) {
	var e *models.Error
	if !errors.As(err, &e) {
		writeError(w, http.StatusInternalServerError, models.ErrQuery, err.Error())
		return
	}
	writeJSON(w, statusFor(e.Kind), e)
}

func statusFor(kind models.ErrorKind) int {
	switch kind {
	case models.ErrValidation:
		return http.StatusBadRequest
	case models.ErrNotFound:
		return http.StatusNotFound
	case models.ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
