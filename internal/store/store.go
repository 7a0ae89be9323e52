// Package store defines the persistence interface for the recipe service.
package store

import (
	"context"

	"github.com/recipevault/recipevault-server/internal/domain"
)

// Store is the persistence interface the service layer depends on.
// The sqlite subpackage provides the production implementation.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Tags (owner-scoped)
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, userID, tagID string) (*domain.Tag, error)
	ListTags(ctx context.Context, userID string) ([]*domain.Tag, error)

	// Ingredients (owner-scoped)
	CreateIngredient(ctx context.Context, ing *domain.Ingredient) error
	GetIngredient(ctx context.Context, userID, ingredientID string) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context, userID string) ([]*domain.Ingredient, error)

	// Recipes (owner-scoped, associations included)
	CreateRecipe(ctx context.Context, recipe *domain.Recipe) error
	GetRecipe(ctx context.Context, userID, recipeID string) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, userID string) ([]*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *domain.Recipe) error
	DeleteRecipe(ctx context.Context, userID, recipeID string) error

	Close() error
}
