package entity

import (
	"time"
)

// User is the aggregate root for the discovery domain.
// AvatarURL and Location are nullable columns, hence pointers.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}
