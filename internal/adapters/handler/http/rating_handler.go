package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

type RatingHandler struct {
	service ports.RatingService
}

func NewRatingHandler(service ports.RatingService) *RatingHandler {
	return &RatingHandler{
		service: service,
	}
}

func (h *RatingHandler) GetAverage(w http.ResponseWriter, r *http.Request) {
	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid recipe id", http.StatusBadRequest)
		return
	}

	average, err := h.service.AverageFor(r.Context(), recipeID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"recipeId":      recipeID,
		"ratingAverage": average,
	})
}

func (h *RatingHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value(UsernameKey).(string)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid recipe id", http.StatusBadRequest)
		return
	}

	rating, err := h.service.RatingFor(r.Context(), username, recipeID)
	if err != nil {
		respondError(w, err)
		return
	}
	if rating == nil {
		http.Error(w, "rating not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, rating)
}

type rateRequest struct {
	RecipeID uuid.UUID `json:"recipeId"`
	Value    *float64  `json:"value"`
}

func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value(UsernameKey).(string)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.RateInput{
		RecipeID: req.RecipeID,
		Value:    req.Value,
	}
	rating, err := h.service.Rate(r.Context(), username, input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rating)
}
