package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

type RecipeHandler struct {
	service       ports.RecipeService
	searchService ports.SearchService
}

func NewRecipeHandler(service ports.RecipeService, searchService ports.SearchService) *RecipeHandler {
	return &RecipeHandler{
		service:       service,
		searchService: searchService,
	}
}

// GetAll lists recipes. With a query, sortBy or direction parameter it
// delegates to the search service instead of returning the plain listing.
func (h *RecipeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := params.Get("query")
	sortBy := params.Get("sortBy")
	direction := params.Get("direction")

	if query == "" && sortBy == "" && direction == "" {
		recipes, err := h.service.FindAll(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, recipes)
		return
	}

	recipes, err := h.searchService.Search(r.Context(), query, sortBy, direction)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid recipe id", http.StatusBadRequest)
		return
	}

	recipe, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

type createRecipeRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Ingredients []uuid.UUID `json:"ingredients"`
	Quantities  []string    `json:"quantities"`
	Tags        []string    `json:"tags"`
	Image       []byte      `json:"image"`
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value(UsernameKey).(string)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req createRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreateRecipeInput{
		Title:       req.Title,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Quantities:  req.Quantities,
		Tags:        req.Tags,
		Image:       req.Image,
	}
	recipe, err := h.service.Create(r.Context(), username, input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, recipe)
}

type updateRecipeRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Ingredients []uuid.UUID `json:"ingredients"`
	Quantities  []string    `json:"quantities"`
	Tags        []string    `json:"tags"`
	Image       []byte      `json:"image"`
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value(UsernameKey).(string)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid recipe id", http.StatusBadRequest)
		return
	}

	var req updateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.UpdateRecipeInput{
		Title:       req.Title,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Quantities:  req.Quantities,
		Tags:        req.Tags,
		Image:       req.Image,
	}
	recipe, err := h.service.Update(r.Context(), username, id, input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value(UsernameKey).(string)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid recipe id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), username, id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
