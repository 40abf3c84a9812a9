package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mergington/activities/internal/domain/activity"
)

// MessageResponse is the body of a successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Error details. Clients match on the lower-cased phrases
// "not found", "already signed up" and "not registered".
const (
	detailNotFound          = "Activity not found"
	detailAlreadyRegistered = "Student is already signed up for this activity"
	detailNotRegistered     = "Student is not registered for this activity"
	detailInternal          = "Internal server error"
)

// StatusFor maps a service error to an HTTP status and detail.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, activity.ErrActivityNotFound):
		return http.StatusNotFound, detailNotFound
	case errors.Is(err, activity.ErrAlreadyRegistered):
		return http.StatusBadRequest, detailAlreadyRegistered
	case errors.Is(err, activity.ErrNotRegistered):
		return http.StatusBadRequest, detailNotRegistered
	default:
		return http.StatusInternalServerError, detailInternal
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
	}
	writeDetail(w, status, detail)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
