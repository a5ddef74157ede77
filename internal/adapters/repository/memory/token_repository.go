package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type RecoveryTokenRepository struct {
	mu     sync.RWMutex
	tokens map[uuid.UUID]domain.RecoveryToken
}

func NewRecoveryTokenRepository() *RecoveryTokenRepository {
	return &RecoveryTokenRepository{tokens: make(map[uuid.UUID]domain.RecoveryToken)}
}

func (r *RecoveryTokenRepository) Create(ctx context.Context, token *domain.RecoveryToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.ID] = *token
	return nil
}

func (r *RecoveryTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RecoveryToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tokens {
		if t.Token == token {
			out := t
			return &out, nil
		}
	}
	return nil, nil
}

func (r *RecoveryTokenRepository) GetAll(ctx context.Context) ([]*domain.RecoveryToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tokens := make([]*domain.RecoveryToken, 0, len(r.tokens))
	for _, token := range r.tokens {
		t := token
		tokens = append(tokens, &t)
	}
	return tokens, nil
}

func (r *RecoveryTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, id)
	return nil
}
