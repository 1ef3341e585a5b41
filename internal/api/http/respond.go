package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/logger"
	"docintake-backend/internal/security"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain failures to caller-visible status/message pairs.
// Internal identifiers and raw storage errors never reach the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "request not found"})
	case errors.Is(err, domain.ErrExpired):
		writeJSON(w, http.StatusGone, errorResponse{Error: "request has expired"})
	case errors.Is(err, domain.ErrNotAvailable):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "request is no longer available"})
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, security.ErrBadCredential),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	default:
		logger.Error("Unhandled API error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
