package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/recipevault/recipevault-server/internal/domain"
	"github.com/recipevault/recipevault-server/internal/id"
	"github.com/recipevault/recipevault-server/internal/store"
	"github.com/recipevault/recipevault-server/internal/validation"
)

// IngredientService orchestrates ingredient operations, owner-scoped like tags.
type IngredientService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(store store.Store, validator *validation.Validator, logger *slog.Logger) *IngredientService {
	return &IngredientService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateIngredientRequest contains new ingredient data.
type CreateIngredientRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ListIngredients returns the user's ingredients ordered by name descending.
func (s *IngredientService) ListIngredients(ctx context.Context, userID string) ([]*domain.Ingredient, error) {
	return s.store.ListIngredients(ctx, userID)
}

// CreateIngredient creates an ingredient owned by the user.
func (s *IngredientService) CreateIngredient(ctx context.Context, userID string, req CreateIngredientRequest) (*domain.Ingredient, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	ingredientID, err := id.Generate("ing")
	if err != nil {
		return nil, fmt.Errorf("generate ingredient ID: %w", err)
	}

	ing := &domain.Ingredient{
		ID:     ingredientID,
		Name:   req.Name,
		UserID: userID,
	}
	ing.InitTimestamps()

	if err := s.store.CreateIngredient(ctx, ing); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("ingredient created", "ingredient_id", ingredientID, "user_id", userID)
	}

	return ing, nil
}
