package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// respondError translates domain error kinds into HTTP statuses. This is
// the only place in the codebase where that translation happens.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrAlreadyExists):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrExpiredToken):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrBadCredentials):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrSendingEmail):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
