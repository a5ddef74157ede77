package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

// Repositories return (nil, nil) when the requested entity does not
// exist; services translate that into domain.ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RegisterInput struct {
	Username string
	Password string
}

type UserUpdateInput struct {
	FirstName *string
	LastName  *string
	Password  *string
}

type ResetPasswordInput struct {
	Username string
	Token    string
	Password string
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Activate(ctx context.Context, token string) error
	Update(ctx context.Context, username string, input UserUpdateInput) (*domain.User, error)
	SendRecoveryToken(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
	Delete(ctx context.Context, username string) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
}
