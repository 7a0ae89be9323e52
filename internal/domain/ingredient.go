package domain

// Ingredient represents a user-owned ingredient usable in recipes.
// Like tags, ingredients are scoped to their owner.
type Ingredient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"-"`
	Timestamps
}
