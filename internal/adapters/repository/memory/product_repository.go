package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[uuid.UUID]domain.Product)}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		p := product
		products = append(products, &p)
	}
	return products, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}
