package domain

import "github.com/shopspring/decimal"

// Recipe represents a user-owned recipe with optional tag and ingredient
// associations. Associations reference tags and ingredients by ID; the
// store resolves them when loading a recipe in detail.
type Recipe struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
	UserID      string          `json:"-"`
	Tags        []Tag           `json:"tags"`
	Ingredients []Ingredient    `json:"ingredients"`
	Timestamps
}

// TagIDs returns the IDs of the recipe's associated tags.
func (r *Recipe) TagIDs() []string {
	ids := make([]string, len(r.Tags))
	for i, t := range r.Tags {
		ids[i] = t.ID
	}
	return ids
}

// IngredientIDs returns the IDs of the recipe's associated ingredients.
func (r *Recipe) IngredientIDs() []string {
	ids := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ids[i] = ing.ID
	}
	return ids
}
