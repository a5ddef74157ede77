package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

// maxIngredientsPerRecipe bounds the ingredient list of a single recipe.
const maxIngredientsPerRecipe = 50

type ingredientService struct {
	productRepo    ports.ProductRepository
	ingredientRepo ports.RecipeIngredientRepository
}

func NewIngredientService(productRepo ports.ProductRepository, ingredientRepo ports.RecipeIngredientRepository) ports.IngredientService {
	return &ingredientService{
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
	}
}

// Resolve looks up every product id and pairs it with its quantity.
// Duplicate product ids collapse to a single association, last quantity
// wins. Nothing is persisted; the caller owns rolling back any parent
// resource it created before calling Resolve.
func (s *ingredientService) Resolve(ctx context.Context, productIDs []uuid.UUID, quantities []string) ([]domain.RecipeIngredient, error) {
	if len(productIDs) != len(quantities) {
		return nil, fmt.Errorf("%w: quantity list doesn't match the size of ingredient list", domain.ErrInvalidInput)
	}
	if len(productIDs) > maxIngredientsPerRecipe {
		return nil, fmt.Errorf("%w: tried to use more than %d products", domain.ErrInvalidInput, maxIngredientsPerRecipe)
	}

	byProduct := make(map[uuid.UUID]int, len(productIDs))
	resolved := make([]domain.RecipeIngredient, 0, len(productIDs))
	for i, productID := range productIDs {
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up product %s: %w", productID, err)
		}
		if product == nil {
			return nil, fmt.Errorf("%w: couldn't find the necessary ingredients", domain.ErrInvalidInput)
		}

		if at, seen := byProduct[productID]; seen {
			resolved[at].Quantity = quantities[i]
			continue
		}
		byProduct[productID] = len(resolved)
		resolved = append(resolved, domain.RecipeIngredient{
			ProductID: productID,
			Quantity:  quantities[i],
			Product:   product,
		})
	}

	return resolved, nil
}

// ReplaceForRecipe drops the recipe's existing associations and persists
// the new set. The store offers no multi-row transaction, so a failure
// partway through leaves a partial ingredient set behind; the error is
// surfaced and the caller decides whether to retry or reject the recipe.
func (s *ingredientService) ReplaceForRecipe(ctx context.Context, recipeID uuid.UUID, ingredients []domain.RecipeIngredient) ([]domain.RecipeIngredient, error) {
	if err := s.ingredientRepo.DeleteForRecipe(ctx, recipeID); err != nil {
		return nil, fmt.Errorf("failed to delete ingredients for recipe %s: %w", recipeID, err)
	}

	persisted := make([]domain.RecipeIngredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		ingredient.RecipeID = recipeID
		if err := s.ingredientRepo.Save(ctx, &ingredient); err != nil {
			return nil, fmt.Errorf("failed to save ingredient %s for recipe %s: %w", ingredient.ProductID, recipeID, err)
		}
		persisted = append(persisted, ingredient)
	}

	return persisted, nil
}

// DeleteForRecipe removes all associations of a recipe. Absence of
// associations is not an error.
func (s *ingredientService) DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error {
	if err := s.ingredientRepo.DeleteForRecipe(ctx, recipeID); err != nil {
		return fmt.Errorf("failed to delete ingredients for recipe %s: %w", recipeID, err)
	}
	return nil
}
