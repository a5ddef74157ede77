package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type RecoveryTokenRepository struct {
	db *sql.DB
}

func NewRecoveryTokenRepository(db *sql.DB) *RecoveryTokenRepository {
	return &RecoveryTokenRepository{db: db}
}

func (r *RecoveryTokenRepository) Create(ctx context.Context, token *domain.RecoveryToken) error {
	query := `
		INSERT INTO recovery_tokens (id, token, user_id, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, token.ID, token.Token, token.UserID, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert recovery token: %w", err)
	}
	return nil
}

func (r *RecoveryTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RecoveryToken, error) {
	query := `
		SELECT id, token, user_id, expires_at FROM recovery_tokens WHERE token = $1
	`
	var out domain.RecoveryToken
	err := r.db.QueryRowContext(ctx, query, token).Scan(&out.ID, &out.Token, &out.UserID, &out.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recovery token: %w", err)
	}
	return &out, nil
}

func (r *RecoveryTokenRepository) GetAll(ctx context.Context) ([]*domain.RecoveryToken, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, token, user_id, expires_at FROM recovery_tokens`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all recovery tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*domain.RecoveryToken
	for rows.Next() {
		var token domain.RecoveryToken
		if err := rows.Scan(&token.ID, &token.Token, &token.UserID, &token.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan recovery token: %w", err)
		}
		tokens = append(tokens, &token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recovery tokens: %w", err)
	}
	return tokens, nil
}

func (r *RecoveryTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recovery_tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recovery token: %w", err)
	}
	return nil
}
