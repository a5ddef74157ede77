package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, recipe_id, author_id, content, creation_date, modification_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, comment.ID, comment.RecipeID, comment.AuthorID, comment.Content, comment.CreationDate, comment.ModificationDate)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	query := `
		UPDATE comments SET content = $2, modification_date = $3 WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, comment.ID, comment.Content, comment.ModificationDate)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query := `
		SELECT c.id, c.recipe_id, c.author_id, u.username, c.content, c.creation_date, c.modification_date
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`
	var comment domain.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.RecipeID, &comment.AuthorID, &comment.AuthorUsername,
		&comment.Content, &comment.CreationDate, &comment.ModificationDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

func (r *CommentRepository) GetForRecipe(ctx context.Context, recipeID uuid.UUID) ([]*domain.Comment, error) {
	query := `
		SELECT c.id, c.recipe_id, c.author_id, u.username, c.content, c.creation_date, c.modification_date
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.recipe_id = $1
		ORDER BY c.seq
	`
	rows, err := r.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID, &comment.RecipeID, &comment.AuthorID, &comment.AuthorUsername,
			&comment.Content, &comment.CreationDate, &comment.ModificationDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE recipe_id = $1`, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete comments for recipe: %w", err)
	}
	return nil
}
