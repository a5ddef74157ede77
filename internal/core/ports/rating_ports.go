package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type RatingRepository interface {
	// Save upserts on the (user, recipe) composite key.
	Save(ctx context.Context, rating *domain.Rating) error
	GetByUserAndRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*domain.Rating, error)
	GetForRecipe(ctx context.Context, recipeID uuid.UUID) ([]*domain.Rating, error)
	DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error
}

type RateInput struct {
	RecipeID uuid.UUID
	Value    *float64
}

type RatingService interface {
	Rate(ctx context.Context, username string, input RateInput) (*domain.Rating, error)
	AverageFor(ctx context.Context, recipeID uuid.UUID) (float64, error)
	// RatingFor returns nil when the user has not rated the recipe yet.
	RatingFor(ctx context.Context, username string, recipeID uuid.UUID) (*domain.Rating, error)
	DeleteAllFor(ctx context.Context, recipeID uuid.UUID) error
}
