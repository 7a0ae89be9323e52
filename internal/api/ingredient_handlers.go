package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/recipevault/recipevault-server/internal/service"
)

func (s *Server) registerIngredientRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listIngredients",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipe/ingredients",
		Summary:     "List ingredients",
		Description: "Returns the current user's ingredients, ordered by name descending",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListIngredients)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createIngredient",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipe/ingredients",
		Summary:       "Create ingredient",
		Description:   "Creates a new ingredient owned by the current user",
		Tags:          []string{"Ingredients"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateIngredient)
}

// === DTOs ===

// ListIngredientsInput contains parameters for listing ingredients.
type ListIngredientsInput struct {
	Authorization string `header:"Authorization"`
}

// IngredientResponse contains ingredient data in API responses.
type IngredientResponse struct {
	ID        string    `json:"id" doc:"Ingredient ID"`
	Name      string    `json:"name" doc:"Ingredient name"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// ListIngredientsResponse contains a list of ingredients.
type ListIngredientsResponse struct {
	Ingredients []IngredientResponse `json:"ingredients" doc:"List of ingredients"`
}

// ListIngredientsOutput wraps the list ingredients response for Huma.
type ListIngredientsOutput struct {
	Body ListIngredientsResponse
}

// CreateIngredientRequest is the request body for creating an ingredient.
type CreateIngredientRequest struct {
	Name string `json:"name,omitempty" doc:"Ingredient name"`
}

// CreateIngredientInput wraps the create ingredient request for Huma.
type CreateIngredientInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateIngredientRequest
}

// IngredientOutput wraps the ingredient response for Huma.
type IngredientOutput struct {
	Body IngredientResponse
}

// === Handlers ===

func (s *Server) handleListIngredients(ctx context.Context, input *ListIngredientsInput) (*ListIngredientsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.services.Ingredient.ListIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]IngredientResponse, len(ingredients))
	for i, ing := range ingredients {
		resp[i] = IngredientResponse{
			ID:        ing.ID,
			Name:      ing.Name,
			CreatedAt: ing.CreatedAt,
			UpdatedAt: ing.UpdatedAt,
		}
	}

	return &ListIngredientsOutput{Body: ListIngredientsResponse{Ingredients: resp}}, nil
}

func (s *Server) handleCreateIngredient(ctx context.Context, input *CreateIngredientInput) (*IngredientOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	ing, err := s.services.Ingredient.CreateIngredient(ctx, userID, service.CreateIngredientRequest{
		Name: input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	return &IngredientOutput{
		Body: IngredientResponse{
			ID:        ing.ID,
			Name:      ing.Name,
			CreatedAt: ing.CreatedAt,
			UpdatedAt: ing.UpdatedAt,
		},
	}, nil
}
