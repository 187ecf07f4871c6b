package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ukemeuu/mani24-kds/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError translates domain errors to HTTP statuses. Rejected
// transitions are conflicts, not server failures; a paused insight service
// gets its own code so clients can tell it apart from a generic error.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrStaffNotFound):
		respondJSON(w, http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrOutsideShift),
		errors.Is(err, domain.ErrRoleNotPermitted):
		respondJSON(w, http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrOrderLocked):
		respondJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrOrderNotFound):
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrServicePaused):
		respondJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Code: "service_paused"})
	default:
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}
