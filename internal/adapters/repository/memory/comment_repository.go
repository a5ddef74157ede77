package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type CommentRepository struct {
	mu       sync.RWMutex
	comments map[uuid.UUID]domain.Comment
	order    []uuid.UUID
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[uuid.UUID]domain.Comment)}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.comments[comment.ID]; !exists {
		r.order = append(r.order, comment.ID)
	}
	r.comments[comment.ID] = *comment
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return r.Create(ctx, comment)
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	comment, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	return &comment, nil
}

func (r *CommentRepository) GetForRecipe(ctx context.Context, recipeID uuid.UUID) ([]*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Comment
	for _, id := range r.order {
		if comment, ok := r.comments[id]; ok && comment.RecipeID == recipeID {
			c := comment
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, id)
	for i, ordered := range r.order {
		if ordered == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *CommentRepository) DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.order[:0]
	for _, id := range r.order {
		if comment, ok := r.comments[id]; ok && comment.RecipeID == recipeID {
			delete(r.comments, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return nil
}
