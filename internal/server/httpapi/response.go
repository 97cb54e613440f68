package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// maxBodyBytes caps request payloads.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes payload as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError writes an ErrorResponse with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// decodeBody reads a single JSON document into v.
func decodeBody(r *http.Request, w http.ResponseWriter, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

// decodeJSON is decodeBody plus struct tag validation.
func decodeJSON(r *http.Request, w http.ResponseWriter, v any) error {
	if err := decodeBody(r, w, v); err != nil {
		return err
	}
	if err := models.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

// statusFor maps service errors to HTTP status codes and client-facing
// messages. Unclassified errors are reported as 500 without detail.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, models.ErrInvalidEntity):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusUnauthorized, "Invalid login credentials"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Authentication failed"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "Not allowed"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "Already exists"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// writeServiceError maps a service error to its status and a safe message.
// Server-side failures are logged with the cause; the client never sees it.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug(r.Context(), "request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	WriteError(w, status, msg)
}
