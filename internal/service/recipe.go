package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/recipevault/recipevault-server/internal/domain"
	domainerrors "github.com/recipevault/recipevault-server/internal/errors"
	"github.com/recipevault/recipevault-server/internal/id"
	"github.com/recipevault/recipevault-server/internal/store"
	"github.com/recipevault/recipevault-server/internal/validation"
)

// RecipeService orchestrates recipe CRUD. All operations are scoped to the
// calling user; a recipe owned by someone else behaves as if it does not
// exist.
type RecipeService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(store store.Store, validator *validation.Validator, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateRecipeRequest contains new recipe data. Tag and ingredient IDs must
// reference existing entities.
type CreateRecipeRequest struct {
	Title         string   `json:"title" validate:"required,max=255"`
	TimeMinutes   int      `json:"time_minutes" validate:"gte=0"`
	Price         string   `json:"price" validate:"required"`
	Link          string   `json:"link" validate:"omitempty,max=255"`
	TagIDs        []string `json:"tags"`
	IngredientIDs []string `json:"ingredients"`
}

// UpdateRecipeRequest contains a full recipe replacement. Omitted tag and
// ingredient lists clear the existing associations.
type UpdateRecipeRequest = CreateRecipeRequest

// PatchRecipeRequest contains a partial recipe update. Nil fields are left
// untouched, including the association lists.
type PatchRecipeRequest struct {
	Title         *string   `json:"title" validate:"omitempty,max=255"`
	TimeMinutes   *int      `json:"time_minutes" validate:"omitempty,gte=0"`
	Price         *string   `json:"price"`
	Link          *string   `json:"link" validate:"omitempty,max=255"`
	TagIDs        *[]string `json:"tags"`
	IngredientIDs *[]string `json:"ingredients"`
}

// parsePrice parses a decimal price string, answering with a field
// validation error on bad input.
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"price": "must be a valid decimal number",
		})
	}
	if price.IsNegative() {
		return decimal.Zero, domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"price": "must not be negative",
		})
	}
	return price, nil
}

// mapAssociationError converts store association errors into field
// validation errors; unknown referenced IDs are client mistakes, not 404s.
func mapAssociationError(err error) error {
	switch {
	case errors.Is(err, store.ErrTagNotFound):
		return domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"tags": "one or more tag IDs do not exist",
		})
	case errors.Is(err, store.ErrIngredientNotFound):
		return domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"ingredients": "one or more ingredient IDs do not exist",
		})
	default:
		return err
	}
}

// tagRefs converts IDs to association stubs for the store.
func tagRefs(ids []string) []domain.Tag {
	tags := make([]domain.Tag, len(ids))
	for i, tagID := range ids {
		tags[i] = domain.Tag{ID: tagID}
	}
	return tags
}

func ingredientRefs(ids []string) []domain.Ingredient {
	ingredients := make([]domain.Ingredient, len(ids))
	for i, ingredientID := range ids {
		ingredients[i] = domain.Ingredient{ID: ingredientID}
	}
	return ingredients
}

// ListRecipes returns the user's recipes, newest first, with associations.
func (s *RecipeService) ListRecipes(ctx context.Context, userID string) ([]*domain.Recipe, error) {
	return s.store.ListRecipes(ctx, userID)
}

// GetRecipe returns a single recipe owned by the user.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrRecipeNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return recipe, nil
}

// CreateRecipe creates a recipe owned by the user, with its associations,
// atomically.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID string, req CreateRecipeRequest) (*domain.Recipe, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	recipeID, err := id.Generate("recipe")
	if err != nil {
		return nil, fmt.Errorf("generate recipe ID: %w", err)
	}

	recipe := &domain.Recipe{
		ID:          recipeID,
		UserID:      userID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       price,
		Link:        req.Link,
		Tags:        tagRefs(req.TagIDs),
		Ingredients: ingredientRefs(req.IngredientIDs),
	}
	recipe.InitTimestamps()

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, mapAssociationError(err)
	}

	if s.logger != nil {
		s.logger.Info("recipe created", "recipe_id", recipeID, "user_id", userID)
	}

	// Re-fetch so associations come back fully populated and ordered.
	return s.GetRecipe(ctx, userID, recipeID)
}

// UpdateRecipe fully replaces a recipe. All fields are taken from the
// request; association lists omitted from the request clear the stored
// associations.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, recipeID string, req UpdateRecipeRequest) (*domain.Recipe, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	recipe, err := s.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	recipe.Title = req.Title
	recipe.TimeMinutes = req.TimeMinutes
	recipe.Price = price
	recipe.Link = req.Link
	recipe.Tags = tagRefs(req.TagIDs)
	recipe.Ingredients = ingredientRefs(req.IngredientIDs)
	recipe.Touch()

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		if errors.Is(err, store.ErrRecipeNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, mapAssociationError(err)
	}

	if s.logger != nil {
		s.logger.Info("recipe updated", "recipe_id", recipeID, "user_id", userID)
	}

	return s.GetRecipe(ctx, userID, recipeID)
}

// PatchRecipe partially updates a recipe. Only fields present in the
// request change; an omitted association list is left as it was.
func (s *RecipeService) PatchRecipe(ctx context.Context, userID, recipeID string, req PatchRecipeRequest) (*domain.Recipe, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	recipe, err := s.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		recipe.Price = price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}
	if req.TagIDs != nil {
		recipe.Tags = tagRefs(*req.TagIDs)
	}
	if req.IngredientIDs != nil {
		recipe.Ingredients = ingredientRefs(*req.IngredientIDs)
	}
	recipe.Touch()

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		if errors.Is(err, store.ErrRecipeNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, mapAssociationError(err)
	}

	if s.logger != nil {
		s.logger.Info("recipe patched", "recipe_id", recipeID, "user_id", userID)
	}

	return s.GetRecipe(ctx, userID, recipeID)
}

// DeleteRecipe removes a recipe owned by the user.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	if err := s.store.DeleteRecipe(ctx, userID, recipeID); err != nil {
		if errors.Is(err, store.ErrRecipeNotFound) {
			return domainerrors.NotFound("recipe not found")
		}
		return fmt.Errorf("delete recipe: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("recipe deleted", "recipe_id", recipeID, "user_id", userID)
	}

	return nil
}
