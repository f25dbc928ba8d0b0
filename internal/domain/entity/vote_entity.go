package entity

import (
	"time"
)

// Vote records that a user voted for a product. The (UserID, ProductID) pair
// is unique while the vote is active; retracting and re-voting creates a new
// row with a new timestamp.
type Vote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
