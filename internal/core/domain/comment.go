package domain

import "github.com/google/uuid"

type Comment struct {
	ID               uuid.UUID `json:"id"`
	RecipeID         uuid.UUID `json:"recipe_id"`
	Content          string    `json:"content"`
	AuthorID         uuid.UUID `json:"author_id"`
	AuthorUsername   string    `json:"author"`
	CreationDate     string    `json:"creation_date"`
	ModificationDate string    `json:"modification_date"`
}

// Rating is keyed by (UserID, RecipeID); a second rating from the same
// user overwrites the first, never duplicates it.
type Rating struct {
	UserID   uuid.UUID `json:"user_id"`
	RecipeID uuid.UUID `json:"recipe_id"`
	Username string    `json:"username"`
	Value    float64   `json:"value"`
}
