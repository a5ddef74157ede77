package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	Update(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	GetForRecipe(ctx context.Context, recipeID uuid.UUID) ([]*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error
}

type CreateCommentInput struct {
	RecipeID uuid.UUID
	Content  string
}

type CommentService interface {
	Create(ctx context.Context, username string, input CreateCommentInput) (*domain.Comment, error)
	Update(ctx context.Context, username string, commentID uuid.UUID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, username string, commentID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindForRecipe(ctx context.Context, recipeID uuid.UUID) ([]*domain.Comment, error)
}
