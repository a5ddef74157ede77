package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
)

type RecipeIngredientRepository struct {
	db *sql.DB
}

func NewRecipeIngredientRepository(db *sql.DB) *RecipeIngredientRepository {
	return &RecipeIngredientRepository{db: db}
}

func (r *RecipeIngredientRepository) Save(ctx context.Context, ingredient *domain.RecipeIngredient) error {
	query := `
		INSERT INTO recipe_ingredients (recipe_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (recipe_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
	`
	_, err := r.db.ExecContext(ctx, query, ingredient.RecipeID, ingredient.ProductID, ingredient.Quantity)
	if err != nil {
		return fmt.Errorf("failed to save recipe ingredient: %w", err)
	}
	return nil
}

func (r *RecipeIngredientRepository) GetForRecipe(ctx context.Context, recipeID uuid.UUID) ([]domain.RecipeIngredient, error) {
	return fetchIngredients(ctx, r.db, recipeID)
}

func (r *RecipeIngredientRepository) DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe ingredients: %w", err)
	}
	return nil
}

// fetchIngredients is shared with RecipeRepository, which attaches the
// association set to recipes it reads.
func fetchIngredients(ctx context.Context, db *sql.DB, recipeID uuid.UUID) ([]domain.RecipeIngredient, error) {
	query := `
		SELECT i.recipe_id, i.product_id, i.quantity, p.name, p.barcode, p.image, p.author_id, u.username
		FROM recipe_ingredients i
		JOIN products p ON p.id = i.product_id
		JOIN users u ON u.id = p.author_id
		WHERE i.recipe_id = $1
		ORDER BY p.seq
	`
	rows, err := db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []domain.RecipeIngredient
	for rows.Next() {
		var ingredient domain.RecipeIngredient
		var product domain.Product
		if err := rows.Scan(
			&ingredient.RecipeID, &ingredient.ProductID, &ingredient.Quantity,
			&product.Name, &product.Barcode, &product.Image, &product.AuthorID, &product.AuthorUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		product.ID = ingredient.ProductID
		ingredient.Product = &product
		ingredients = append(ingredients, ingredient)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipe ingredients: %w", err)
	}
	return ingredients, nil
}
