package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateProductInput struct {
	Name    string
	Barcode string
	Image   []byte
}

type UpdateProductInput struct {
	Name    *string
	Barcode *string
	Image   []byte
}

type ProductService interface {
	Create(ctx context.Context, username string, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, username string, productID uuid.UUID, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, username string, productID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
}
