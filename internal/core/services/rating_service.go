package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

type ratingService struct {
	ratingRepo ports.RatingRepository
	recipeRepo ports.RecipeRepository
	userRepo   ports.UserRepository
}

func NewRatingService(ratingRepo ports.RatingRepository, recipeRepo ports.RecipeRepository, userRepo ports.UserRepository) ports.RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
	}
}

// Rate records the user's rating for a recipe, overwriting any rating
// the same user already gave it. Any user may rate any recipe; the
// ownership check applies to the rating itself, not the recipe.
func (s *ratingService) Rate(ctx context.Context, username string, input ports.RateInput) (*domain.Rating, error) {
	if input.Value == nil {
		return nil, fmt.Errorf("%w: rating value was not provided", domain.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user with username %q", domain.ErrNotFound, username)
	}

	recipe, err := s.recipeRepo.GetByID(ctx, input.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", input.RecipeID, err)
	}
	if recipe == nil {
		return nil, fmt.Errorf("%w: recipe with id %s", domain.ErrNotFound, input.RecipeID)
	}

	rating, err := s.ratingRepo.GetByUserAndRecipe(ctx, user.ID, input.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing rating: %w", err)
	}
	if rating == nil {
		rating = &domain.Rating{
			UserID:   user.ID,
			RecipeID: input.RecipeID,
			Username: user.Username,
		}
	}
	rating.Value = *input.Value

	if err := AuthorizeOwner(username, rating.Username); err != nil {
		return nil, err
	}

	if err := s.ratingRepo.Save(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}

	return rating, nil
}

// AverageFor computes the arithmetic mean of all ratings for a recipe as
// sum/count over the full rating set, so repeated calls are reproducible
// regardless of the order ratings arrived in. An unrated recipe averages
// to exactly 0.0.
func (s *ratingService) AverageFor(ctx context.Context, recipeID uuid.UUID) (float64, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return 0, fmt.Errorf("failed to get recipe %s: %w", recipeID, err)
	}
	if recipe == nil {
		return 0, fmt.Errorf("%w: recipe with id %s", domain.ErrNotFound, recipeID)
	}

	ratings, err := s.ratingRepo.GetForRecipe(ctx, recipeID)
	if err != nil {
		return 0, fmt.Errorf("failed to get ratings for recipe %s: %w", recipeID, err)
	}
	if len(ratings) == 0 {
		return 0.0, nil
	}

	var sum float64
	for _, rating := range ratings {
		sum += rating.Value
	}
	return sum / float64(len(ratings)), nil
}

func (s *ratingService) RatingFor(ctx context.Context, username string, recipeID uuid.UUID) (*domain.Rating, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user with username %q", domain.ErrNotFound, username)
	}

	rating, err := s.ratingRepo.GetByUserAndRecipe(ctx, user.ID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return rating, nil
}

// DeleteAllFor removes every rating of a recipe; used by the recipe
// cascade on deletion. Absence of ratings is not an error.
func (s *ratingService) DeleteAllFor(ctx context.Context, recipeID uuid.UUID) error {
	if err := s.ratingRepo.DeleteForRecipe(ctx, recipeID); err != nil {
		return fmt.Errorf("failed to delete ratings for recipe %s: %w", recipeID, err)
	}
	return nil
}
