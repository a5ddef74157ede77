package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type ingredientKey struct {
	recipeID  uuid.UUID
	productID uuid.UUID
}

// RecipeIngredientRepository keys associations on the (recipe, product)
// pair, so saving the same pair twice overwrites instead of duplicating.
type RecipeIngredientRepository struct {
	mu          sync.RWMutex
	ingredients map[ingredientKey]domain.RecipeIngredient
	order       []ingredientKey
}

func NewRecipeIngredientRepository() *RecipeIngredientRepository {
	return &RecipeIngredientRepository{ingredients: make(map[ingredientKey]domain.RecipeIngredient)}
}

func (r *RecipeIngredientRepository) Save(ctx context.Context, ingredient *domain.RecipeIngredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ingredientKey{recipeID: ingredient.RecipeID, productID: ingredient.ProductID}
	if _, exists := r.ingredients[key]; !exists {
		r.order = append(r.order, key)
	}
	r.ingredients[key] = *ingredient
	return nil
}

func (r *RecipeIngredientRepository) GetForRecipe(ctx context.Context, recipeID uuid.UUID) ([]domain.RecipeIngredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.RecipeIngredient
	for _, key := range r.order {
		if key.recipeID != recipeID {
			continue
		}
		if ingredient, ok := r.ingredients[key]; ok {
			out = append(out, ingredient)
		}
	}
	return out, nil
}

func (r *RecipeIngredientRepository) DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.order[:0]
	for _, key := range r.order {
		if key.recipeID == recipeID {
			delete(r.ingredients, key)
			continue
		}
		kept = append(kept, key)
	}
	r.order = kept
	return nil
}
