package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

type productService struct {
	productRepo ports.ProductRepository
	userRepo    ports.UserRepository
}

func NewProductService(productRepo ports.ProductRepository, userRepo ports.UserRepository) ports.ProductService {
	return &productService{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

func (s *productService) Create(ctx context.Context, username string, input ports.CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: product name has not been provided", domain.ErrInvalidInput)
	}

	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	if author == nil {
		return nil, fmt.Errorf("%w: user with username %q", domain.ErrNotFound, username)
	}

	product := &domain.Product{
		ID:             uuid.New(),
		Name:           input.Name,
		Barcode:        input.Barcode,
		Image:          input.Image,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *productService) Update(ctx context.Context, username string, productID uuid.UUID, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.requireProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeOwner(username, product.AuthorUsername); err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Barcode != nil {
		product.Barcode = *input.Barcode
	}
	if input.Image != nil {
		product.Image = input.Image
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}

	return product, nil
}

func (s *productService) Delete(ctx context.Context, username string, productID uuid.UUID) error {
	product, err := s.requireProduct(ctx, productID)
	if err != nil {
		return err
	}

	if err := AuthorizeOwner(username, product.AuthorUsername); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}

	return nil
}

func (s *productService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.requireProduct(ctx, id)
}

func (s *productService) FindAll(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

func (s *productService) requireProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product with id %s", domain.ErrNotFound, id)
	}
	return product, nil
}
