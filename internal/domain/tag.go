package domain

// Tag represents a user-owned label for categorizing recipes.
// Tags are scoped to their owner — two users can each have a "vegan" tag
// and they are distinct entities.
type Tag struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"-"` // Owner, never exposed in API responses
	Timestamps
}
