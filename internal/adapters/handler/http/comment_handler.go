package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{
		service: service,
	}
}

func (h *CommentHandler) GetForRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid recipe id", http.StatusBadRequest)
		return
	}

	comments, err := h.service.FindForRecipe(r.Context(), recipeID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

type createCommentRequest struct {
	RecipeID uuid.UUID `json:"recipeId"`
	Content  string    `json:"content"`
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value(UsernameKey).(string)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreateCommentInput{
		RecipeID: req.RecipeID,
		Content:  req.Content,
	}
	comment, err := h.service.Create(r.Context(), username, input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value(UsernameKey).(string)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid comment id", http.StatusBadRequest)
		return
	}

	var req updateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.service.Update(r.Context(), username, id, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value(UsernameKey).(string)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid comment id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), username, id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
