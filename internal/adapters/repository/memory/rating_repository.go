package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type ratingKey struct {
	userID   uuid.UUID
	recipeID uuid.UUID
}

// RatingRepository keys ratings on the (user, recipe) pair; saving twice
// for the same pair overwrites the value.
type RatingRepository struct {
	mu      sync.RWMutex
	ratings map[ratingKey]domain.Rating
	order   []ratingKey
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{ratings: make(map[ratingKey]domain.Rating)}
}

func (r *RatingRepository) Save(ctx context.Context, rating *domain.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ratingKey{userID: rating.UserID, recipeID: rating.RecipeID}
	if _, exists := r.ratings[key]; !exists {
		r.order = append(r.order, key)
	}
	r.ratings[key] = *rating
	return nil
}

func (r *RatingRepository) GetByUserAndRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*domain.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rating, ok := r.ratings[ratingKey{userID: userID, recipeID: recipeID}]
	if !ok {
		return nil, nil
	}
	return &rating, nil
}

func (r *RatingRepository) GetForRecipe(ctx context.Context, recipeID uuid.UUID) ([]*domain.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Rating
	for _, key := range r.order {
		if key.recipeID != recipeID {
			continue
		}
		if rating, ok := r.ratings[key]; ok {
			rt := rating
			out = append(out, &rt)
		}
	}
	return out, nil
}

func (r *RatingRepository) DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.order[:0]
	for _, key := range r.order {
		if key.recipeID == recipeID {
			delete(r.ratings, key)
			continue
		}
		kept = append(kept, key)
	}
	r.order = kept
	return nil
}
