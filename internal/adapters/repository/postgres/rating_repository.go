package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type RatingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Save(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (user_id, recipe_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, recipe_id) DO UPDATE SET value = EXCLUDED.value
	`
	_, err := r.db.ExecContext(ctx, query, rating.UserID, rating.RecipeID, rating.Value)
	if err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}
	return nil
}

func (r *RatingRepository) GetByUserAndRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*domain.Rating, error) {
	query := `
		SELECT r.user_id, r.recipe_id, u.username, r.value
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1 AND r.recipe_id = $2
	`
	var rating domain.Rating
	err := r.db.QueryRowContext(ctx, query, userID, recipeID).Scan(&rating.UserID, &rating.RecipeID, &rating.Username, &rating.Value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return &rating, nil
}

func (r *RatingRepository) GetForRecipe(ctx context.Context, recipeID uuid.UUID) ([]*domain.Rating, error) {
	query := `
		SELECT r.user_id, r.recipe_id, u.username, r.value
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.recipe_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*domain.Rating
	for rows.Next() {
		var rating domain.Rating
		if err := rows.Scan(&rating.UserID, &rating.RecipeID, &rating.Username, &rating.Value); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, &rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}
	return ratings, nil
}

func (r *RatingRepository) DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ratings WHERE recipe_id = $1`, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete ratings for recipe: %w", err)
	}
	return nil
}
