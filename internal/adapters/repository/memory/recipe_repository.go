package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

// RecipeRepository keeps recipes in insertion order, which is the
// store-native order read listings fall back to.
type RecipeRepository struct {
	mu          sync.RWMutex
	recipes     map[uuid.UUID]domain.Recipe
	order       []uuid.UUID
	ingredients *RecipeIngredientRepository
}

func NewRecipeRepository(ingredients *RecipeIngredientRepository) *RecipeRepository {
	return &RecipeRepository{
		recipes:     make(map[uuid.UUID]domain.Recipe),
		ingredients: ingredients,
	}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.recipes[recipe.ID]; !exists {
		r.order = append(r.order, recipe.ID)
	}
	r.recipes[recipe.ID] = *recipe
	return nil
}

func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	return r.Create(ctx, recipe)
}

func (r *RecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	r.mu.RLock()
	recipe, ok := r.recipes[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.attach(ctx, recipe)
}

func (r *RecipeRepository) GetAll(ctx context.Context) ([]*domain.Recipe, error) {
	r.mu.RLock()
	ordered := make([]domain.Recipe, 0, len(r.order))
	for _, id := range r.order {
		if recipe, ok := r.recipes[id]; ok {
			ordered = append(ordered, recipe)
		}
	}
	r.mu.RUnlock()

	recipes := make([]*domain.Recipe, 0, len(ordered))
	for _, recipe := range ordered {
		attached, err := r.attach(ctx, recipe)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, attached)
	}
	return recipes, nil
}

func (r *RecipeRepository) Search(ctx context.Context, query string) ([]*domain.Recipe, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var matched []*domain.Recipe
	for _, recipe := range all {
		if matchesQuery(recipe, query) {
			matched = append(matched, recipe)
		}
	}
	return matched, nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.recipes, id)
	for i, ordered := range r.order {
		if ordered == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *RecipeRepository) attach(ctx context.Context, recipe domain.Recipe) (*domain.Recipe, error) {
	ingredients, err := r.ingredients.GetForRecipe(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = ingredients
	return &recipe, nil
}

func matchesQuery(recipe *domain.Recipe, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(recipe.Title), query) {
		return true
	}
	for _, tag := range recipe.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
