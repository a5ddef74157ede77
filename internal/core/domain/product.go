package domain

import "github.com/google/uuid"

type Product struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Barcode        string    `json:"barcode"`
	Image          []byte    `json:"image"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorUsername string    `json:"author"`
}
