package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

type commentService struct {
	commentRepo ports.CommentRepository
	recipeRepo  ports.RecipeRepository
	userRepo    ports.UserRepository
	clock       ports.Clock
}

func NewCommentService(commentRepo ports.CommentRepository, recipeRepo ports.RecipeRepository, userRepo ports.UserRepository, clock ports.Clock) ports.CommentService {
	return &commentService{
		commentRepo: commentRepo,
		recipeRepo:  recipeRepo,
		userRepo:    userRepo,
		clock:       clock,
	}
}

func (s *commentService) Create(ctx context.Context, username string, input ports.CreateCommentInput) (*domain.Comment, error) {
	if input.Content == "" {
		return nil, fmt.Errorf("%w: comment's content was not provided", domain.ErrInvalidInput)
	}

	recipe, err := s.recipeRepo.GetByID(ctx, input.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", input.RecipeID, err)
	}
	if recipe == nil {
		return nil, fmt.Errorf("%w: recipe with id %s", domain.ErrNotFound, input.RecipeID)
	}

	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	if author == nil {
		return nil, fmt.Errorf("%w: user with username %q", domain.ErrNotFound, username)
	}

	comment := &domain.Comment{
		ID:             uuid.New(),
		RecipeID:       recipe.ID,
		Content:        input.Content,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		CreationDate:   s.clock.Now().Format(domain.TimeLayout),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

func (s *commentService) Update(ctx context.Context, username string, commentID uuid.UUID, content string) (*domain.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: comment's content was not provided", domain.ErrInvalidInput)
	}

	comment, err := s.requireComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeOwner(username, comment.AuthorUsername); err != nil {
		return nil, err
	}

	comment.Content = content
	comment.ModificationDate = s.clock.Now().Format(domain.TimeLayout)

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment %s: %w", commentID, err)
	}

	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, username string, commentID uuid.UUID) error {
	comment, err := s.requireComment(ctx, commentID)
	if err != nil {
		return err
	}

	if err := AuthorizeOwner(username, comment.AuthorUsername); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment %s: %w", commentID, err)
	}

	return nil
}

func (s *commentService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return s.requireComment(ctx, id)
}

func (s *commentService) FindForRecipe(ctx context.Context, recipeID uuid.UUID) ([]*domain.Comment, error) {
	comments, err := s.commentRepo.GetForRecipe(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments for recipe %s: %w", recipeID, err)
	}
	return comments, nil
}

func (s *commentService) requireComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment %s: %w", id, err)
	}
	if comment == nil {
		return nil, fmt.Errorf("%w: comment with id %s", domain.ErrNotFound, id)
	}
	return comment, nil
}
