package entity

import (
	"time"
)

// Comment is user feedback on a product. Updates change content only;
// CreatedAt is immutable once set.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
