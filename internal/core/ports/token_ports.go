package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type RecoveryTokenRepository interface {
	Create(ctx context.Context, token *domain.RecoveryToken) error
	GetByToken(ctx context.Context, token string) (*domain.RecoveryToken, error)
	GetAll(ctx context.Context) ([]*domain.RecoveryToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
