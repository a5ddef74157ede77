package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

type recipeService struct {
	recipeRepo    ports.RecipeRepository
	commentRepo   ports.CommentRepository
	userRepo      ports.UserRepository
	ingredientSvc ports.IngredientService
	ratingSvc     ports.RatingService
	clock         ports.Clock
}

func NewRecipeService(
	recipeRepo ports.RecipeRepository,
	commentRepo ports.CommentRepository,
	userRepo ports.UserRepository,
	ingredientSvc ports.IngredientService,
	ratingSvc ports.RatingService,
	clock ports.Clock,
) ports.RecipeService {
	return &recipeService{
		recipeRepo:    recipeRepo,
		commentRepo:   commentRepo,
		userRepo:      userRepo,
		ingredientSvc: ingredientSvc,
		ratingSvc:     ratingSvc,
		clock:         clock,
	}
}

// Create persists a new recipe together with its ingredient
// associations. The store has no multi-row transaction, so when the
// ingredient set cannot be resolved or persisted the just-created recipe
// row is deleted again before the error is surfaced; the operation never
// leaves an orphaned recipe behind on that path.
func (s *recipeService) Create(ctx context.Context, username string, input ports.CreateRecipeInput) (*domain.Recipe, error) {
	if err := validateRecipeForCreate(input); err != nil {
		return nil, err
	}

	author, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().Format(domain.TimeLayout)
	recipe := &domain.Recipe{
		ID:               uuid.New(),
		Title:            input.Title,
		Description:      input.Description,
		Tags:             dedupeTags(input.Tags),
		Image:            input.Image,
		AuthorID:         author.ID,
		AuthorUsername:   author.Username,
		CreationDate:     now,
		ModificationDate: now,
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	resolved, err := s.ingredientSvc.Resolve(ctx, input.Ingredients, input.Quantities)
	if err == nil {
		recipe.Ingredients, err = s.ingredientSvc.ReplaceForRecipe(ctx, recipe.ID, resolved)
	}
	if err != nil {
		if delErr := s.recipeRepo.Delete(ctx, recipe.ID); delErr != nil {
			return nil, fmt.Errorf("failed to roll back recipe %s: %v: %w", recipe.ID, delErr, err)
		}
		return nil, err
	}

	return recipe, nil
}

// Update applies partial-update semantics: nil fields leave the current
// value untouched. A supplied ingredient list replaces the full
// association set.
func (s *recipeService) Update(ctx context.Context, username string, recipeID uuid.UUID, input ports.UpdateRecipeInput) (*domain.Recipe, error) {
	recipe, err := s.requireRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeOwner(username, recipe.AuthorUsername); err != nil {
		return nil, err
	}

	if input.Title != nil {
		recipe.Title = *input.Title
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if input.Ingredients != nil {
		resolved, err := s.ingredientSvc.Resolve(ctx, input.Ingredients, input.Quantities)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients, err = s.ingredientSvc.ReplaceForRecipe(ctx, recipe.ID, resolved)
		if err != nil {
			return nil, err
		}
	}
	if input.Tags != nil {
		recipe.Tags = dedupeTags(input.Tags)
	}
	if input.Image != nil {
		recipe.Image = input.Image
	}
	recipe.ModificationDate = s.clock.Now().Format(domain.TimeLayout)

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to update recipe %s: %w", recipeID, err)
	}

	return recipe, nil
}

// Delete removes the recipe and all its dependents. Dependents go first,
// the recipe row last: an interruption may leave a recipe without
// dependents, which is dead weight but consistent, whereas the reverse
// order could leave live dependents referencing a gone recipe.
func (s *recipeService) Delete(ctx context.Context, username string, recipeID uuid.UUID) error {
	recipe, err := s.requireRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	if err := AuthorizeOwner(username, recipe.AuthorUsername); err != nil {
		return err
	}

	if err := s.ingredientSvc.DeleteForRecipe(ctx, recipeID); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteForRecipe(ctx, recipeID); err != nil {
		return fmt.Errorf("failed to delete comments for recipe %s: %w", recipeID, err)
	}
	if err := s.ratingSvc.DeleteAllFor(ctx, recipeID); err != nil {
		return err
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", recipeID, err)
	}

	return nil
}

func (s *recipeService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	return s.requireRecipe(ctx, id)
}

func (s *recipeService) FindAll(ctx context.Context) ([]*domain.Recipe, error) {
	recipes, err := s.recipeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all recipes: %w", err)
	}
	return recipes, nil
}

func (s *recipeService) requireRecipe(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	if recipe == nil {
		return nil, fmt.Errorf("%w: recipe with id %s", domain.ErrNotFound, id)
	}
	return recipe, nil
}

func (s *recipeService) requireUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user with username %q", domain.ErrNotFound, username)
	}
	return user, nil
}

func validateRecipeForCreate(input ports.CreateRecipeInput) error {
	switch {
	case input.Title == "":
		return fmt.Errorf("%w: recipe title has not been provided", domain.ErrInvalidInput)
	case input.Description == "":
		return fmt.Errorf("%w: recipe description has not been provided", domain.ErrInvalidInput)
	case input.Ingredients == nil:
		return fmt.Errorf("%w: recipe ingredients have not been provided", domain.ErrInvalidInput)
	case input.Quantities == nil:
		return fmt.Errorf("%w: recipe quantities have not been provided", domain.ErrInvalidInput)
	case len(input.Ingredients) > maxIngredientsPerRecipe:
		return fmt.Errorf("%w: tried to add a recipe with more than %d products", domain.ErrInvalidInput, maxIngredientsPerRecipe)
	case input.Tags == nil:
		return fmt.Errorf("%w: tried to add a recipe without tags", domain.ErrInvalidInput)
	case len(input.Image) == 0:
		return fmt.Errorf("%w: tried to add a recipe without an image", domain.ErrInvalidInput)
	case len(input.Quantities) != len(input.Ingredients):
		return fmt.Errorf("%w: quantity list doesn't match the size of ingredient list", domain.ErrInvalidInput)
	}
	return nil
}

// dedupeTags drops duplicate tags, keeping first occurrence order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
