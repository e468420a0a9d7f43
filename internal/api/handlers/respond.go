package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// envelope is the single response shape every endpoint uses.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondSuccess(w http.ResponseWriter, statusCode int, data any) {
	respondJSON(w, statusCode, envelope{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, envelope{Success: false, Error: message})
}

// respondAppError maps a service error onto the envelope, masking
// internal detail behind the fallback message.
func respondAppError(w http.ResponseWriter, err error, fallback string) {
	respondError(w, apperrors.StatusCode(err), apperrors.Message(err, fallback))
}

func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperrors.NewValidationError("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	return nil
}
