package domain

import "github.com/google/uuid"

// TimeLayout is the ISO-8601 layout used for recipe and comment
// timestamps. All timestamps are produced in a single fixed reference
// timezone supplied by the Clock port.
const TimeLayout = "2006-01-02T15:04:05"

type Recipe struct {
	ID               uuid.UUID          `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Tags             []string           `json:"tags"`
	Image            []byte             `json:"image"`
	AuthorID         uuid.UUID          `json:"author_id"`
	AuthorUsername   string             `json:"author"`
	CreationDate     string             `json:"creation_date"`
	ModificationDate string             `json:"modification_date"`
	Rating           float64            `json:"rating"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
}

// RecipeIngredient associates a recipe with a product and a free-text
// quantity. At most one association exists per (recipe, product) pair.
type RecipeIngredient struct {
	RecipeID  uuid.UUID `json:"recipe_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  string    `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
}
