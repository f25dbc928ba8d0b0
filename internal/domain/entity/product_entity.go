package entity

import (
	"time"
)

// Product is a user submission. Tags is an ordered sequence; duplicates are
// allowed and comparison is exact-string, case-sensitive.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Tags        []string  `json:"tags"`
	Location    *string   `json:"location"`
	IsMadeInMY  bool      `json:"is_made_in_my"`
	CreatedAt   time.Time `json:"created_at"`
	AuthorID    string    `json:"author_id"`
}

// ProductWithVotes decorates a product with aggregate vote data.
// UserVoted is nil when no viewer was supplied for the query.
type ProductWithVotes struct {
	Product
	VoteCount int   `json:"vote_count"`
	UserVoted *bool `json:"user_voted"`
}
