package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type RecipeRepository struct {
	db *sql.DB
}

func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryRecipe := `
		INSERT INTO recipes (id, title, description, image, author_id, creation_date, modification_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, queryRecipe, recipe.ID, recipe.Title, recipe.Description, recipe.Image, recipe.AuthorID, recipe.CreationDate, recipe.ModificationDate)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	if err := insertTags(ctx, tx, recipe.ID, recipe.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryRecipe := `
		UPDATE recipes
		SET title = $2, description = $3, image = $4, modification_date = $5
		WHERE id = $1
	`
	_, err = tx.ExecContext(ctx, queryRecipe, recipe.ID, recipe.Title, recipe.Description, recipe.Image, recipe.ModificationDate)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipe.ID)
	if err != nil {
		return fmt.Errorf("failed to clear recipe tags: %w", err)
	}
	if err := insertTags(ctx, tx, recipe.ID, recipe.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	query := `
		SELECT r.id, r.title, r.description, r.image, r.author_id, u.username, r.creation_date, r.modification_date
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = $1
	`
	var recipe domain.Recipe
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&recipe.ID, &recipe.Title, &recipe.Description, &recipe.Image,
		&recipe.AuthorID, &recipe.AuthorUsername, &recipe.CreationDate, &recipe.ModificationDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if err := r.attach(ctx, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *RecipeRepository) GetAll(ctx context.Context) ([]*domain.Recipe, error) {
	query := `
		SELECT r.id, r.title, r.description, r.image, r.author_id, u.username, r.creation_date, r.modification_date
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		ORDER BY r.seq
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all recipes: %w", err)
	}
	defer rows.Close()

	return r.scanRecipes(ctx, rows)
}

func (r *RecipeRepository) Search(ctx context.Context, q string) ([]*domain.Recipe, error) {
	query := `
		SELECT r.id, r.title, r.description, r.image, r.author_id, u.username, r.creation_date, r.modification_date
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		WHERE r.title ILIKE $1
		   OR EXISTS (SELECT 1 FROM recipe_tags t WHERE t.recipe_id = r.id AND t.tag ILIKE $1)
		ORDER BY r.seq
	`
	rows, err := r.db.QueryContext(ctx, query, "%"+q+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	defer rows.Close()

	return r.scanRecipes(ctx, rows)
}

func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete recipe tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *RecipeRepository) scanRecipes(ctx context.Context, rows *sql.Rows) ([]*domain.Recipe, error) {
	var recipes []*domain.Recipe
	for rows.Next() {
		var recipe domain.Recipe
		if err := rows.Scan(
			&recipe.ID, &recipe.Title, &recipe.Description, &recipe.Image,
			&recipe.AuthorID, &recipe.AuthorUsername, &recipe.CreationDate, &recipe.ModificationDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, &recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	for _, recipe := range recipes {
		if err := r.attach(ctx, recipe); err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

func (r *RecipeRepository) attach(ctx context.Context, recipe *domain.Recipe) error {
	tags, err := r.fetchTags(ctx, recipe.ID)
	if err != nil {
		return err
	}
	recipe.Tags = tags

	ingredients, err := fetchIngredients(ctx, r.db, recipe.ID)
	if err != nil {
		return err
	}
	recipe.Ingredients = ingredients
	return nil
}

func (r *RecipeRepository) fetchTags(ctx context.Context, recipeID uuid.UUID) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tag FROM recipe_tags WHERE recipe_id = $1 ORDER BY tag`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return tags, nil
}

func insertTags(ctx context.Context, tx *sql.Tx, recipeID uuid.UUID, tags []string) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO recipe_tags (recipe_id, tag) VALUES ($1, $2)`)
	if err != nil {
		return fmt.Errorf("failed to prepare tag statement: %w", err)
	}
	defer stmt.Close()

	for _, tag := range tags {
		if _, err := stmt.ExecContext(ctx, recipeID, tag); err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
	}
	return nil
}
