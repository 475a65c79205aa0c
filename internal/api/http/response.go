package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps the domain error taxonomy onto HTTP status codes. Unknown
// errors are logged and surfaced as a bare 500.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInactiveAccount),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDuplicateIdentifier),
		errors.Is(err, domain.ErrConcurrencyConflict):
		status = http.StatusConflict
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}
