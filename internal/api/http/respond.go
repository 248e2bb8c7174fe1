package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/logger"
)

type errorResponse struct {
	Error          string `json:"error"`
	RequiresWaiver bool   `json:"requires_waiver,omitempty"`
	Requested      int    `json:"requested,omitempty"`
	Available      int    `json:"available,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// respondError maps domain error kinds onto HTTP statuses so clients can tell
// "fix your input" from "try again later".
func respondError(w http.ResponseWriter, err error) {
	var insufficient *domain.InsufficientAvailabilityError
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrKayakNotFound),
		errors.Is(err, domain.ErrRentalNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrWaiverRequired):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: err.Error(), RequiresWaiver: true})
	case errors.Is(err, domain.ErrNotAuthorized):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPaymentRequired):
		respondJSON(w, http.StatusPaymentRequired, errorResponse{Error: err.Error()})
	case errors.As(err, &insufficient):
		respondJSON(w, http.StatusConflict, errorResponse{
			Error: err.Error(), Requested: insufficient.Requested, Available: insufficient.Available,
		})
	case errors.Is(err, domain.ErrAlreadyReturned):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmailTaken):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPhotoRequired),
		errors.Is(err, domain.ErrResetTokenInvalid),
		errors.Is(err, domain.ErrNoStoredPaymentMethod):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		logger.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondBadRequest(w, "invalid request body")
		return false
	}
	return true
}
