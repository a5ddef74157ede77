package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe) error
	Update(ctx context.Context, recipe *domain.Recipe) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)
	GetAll(ctx context.Context) ([]*domain.Recipe, error)
	// Search matches the lowercased query as a substring of the recipe
	// title or of any tag, case-insensitively, in store-native order.
	Search(ctx context.Context, query string) ([]*domain.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RecipeIngredientRepository interface {
	// Save upserts on the (recipe, product) composite key.
	Save(ctx context.Context, ingredient *domain.RecipeIngredient) error
	GetForRecipe(ctx context.Context, recipeID uuid.UUID) ([]domain.RecipeIngredient, error)
	DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error
}

type CreateRecipeInput struct {
	Title       string
	Description string
	Ingredients []uuid.UUID
	Quantities  []string
	Tags        []string
	Image       []byte
}

// UpdateRecipeInput carries partial-update semantics: a nil field means
// "leave unchanged", never "clear".
type UpdateRecipeInput struct {
	Title       *string
	Description *string
	Ingredients []uuid.UUID
	Quantities  []string
	Tags        []string
	Image       []byte
}

type RecipeService interface {
	Create(ctx context.Context, username string, input CreateRecipeInput) (*domain.Recipe, error)
	Update(ctx context.Context, username string, recipeID uuid.UUID, input UpdateRecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, username string, recipeID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)
	FindAll(ctx context.Context) ([]*domain.Recipe, error)
}

// IngredientService resolves and maintains the ingredient associations
// owned by a recipe.
type IngredientService interface {
	Resolve(ctx context.Context, productIDs []uuid.UUID, quantities []string) ([]domain.RecipeIngredient, error)
	ReplaceForRecipe(ctx context.Context, recipeID uuid.UUID, ingredients []domain.RecipeIngredient) ([]domain.RecipeIngredient, error)
	DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error
}

type SearchService interface {
	Search(ctx context.Context, query, sortKey, direction string) ([]*domain.Recipe, error)
}
