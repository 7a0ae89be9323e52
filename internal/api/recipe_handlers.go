package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/recipevault/recipevault-server/internal/domain"
	"github.com/recipevault/recipevault-server/internal/service"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipe/recipes",
		Summary:     "List recipes",
		Description: "Returns the current user's recipes, newest first",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createRecipe",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipe/recipes",
		Summary:       "Create recipe",
		Description:   "Creates a new recipe with optional tag and ingredient associations",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipe/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns a recipe by ID",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "replaceRecipe",
		Method:      http.MethodPut,
		Path:        "/api/v1/recipe/recipes/{id}",
		Summary:     "Replace recipe",
		Description: "Fully replaces a recipe; omitted associations are cleared",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReplaceRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/recipe/recipes/{id}",
		Summary:     "Update recipe",
		Description: "Partially updates a recipe; omitted fields are untouched",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteRecipe",
		Method:        http.MethodDelete,
		Path:          "/api/v1/recipe/recipes/{id}",
		Summary:       "Delete recipe",
		Description:   "Deletes a recipe and its associations",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteRecipe)
}

// === DTOs ===

// ListRecipesInput contains parameters for listing recipes.
type ListRecipesInput struct {
	Authorization string `header:"Authorization"`
}

// RecipeResponse contains recipe data in API responses.
type RecipeResponse struct {
	ID          string               `json:"id" doc:"Recipe ID"`
	Title       string               `json:"title" doc:"Recipe title"`
	TimeMinutes int                  `json:"time_minutes" doc:"Preparation time in minutes"`
	Price       string               `json:"price" doc:"Price as a decimal string"`
	Link        string               `json:"link" doc:"External link"`
	Tags        []TagResponse        `json:"tags" doc:"Associated tags"`
	Ingredients []IngredientResponse `json:"ingredients" doc:"Associated ingredients"`
	CreatedAt   time.Time            `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time            `json:"updated_at" doc:"Last update time"`
}

// ListRecipesResponse contains a list of recipes.
type ListRecipesResponse struct {
	Recipes []RecipeResponse `json:"recipes" doc:"List of recipes"`
}

// ListRecipesOutput wraps the list recipes response for Huma.
type ListRecipesOutput struct {
	Body ListRecipesResponse
}

// RecipeRequest is the request body for creating or fully replacing a
// recipe. Tags and ingredients are arrays of existing record IDs.
type RecipeRequest struct {
	Title       string   `json:"title,omitempty" doc:"Recipe title"`
	TimeMinutes int      `json:"time_minutes,omitempty" doc:"Preparation time in minutes"`
	Price       string   `json:"price,omitempty" doc:"Price as a decimal string"`
	Link        string   `json:"link,omitempty" doc:"External link"`
	Tags        []string `json:"tags,omitempty" doc:"Tag IDs to associate"`
	Ingredients []string `json:"ingredients,omitempty" doc:"Ingredient IDs to associate"`
}

// CreateRecipeInput wraps the create recipe request for Huma.
type CreateRecipeInput struct {
	Authorization string `header:"Authorization"`
	Body          RecipeRequest
}

// RecipeOutput wraps the recipe response for Huma.
type RecipeOutput struct {
	Body RecipeResponse
}

// GetRecipeInput contains parameters for getting a recipe.
type GetRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
}

// ReplaceRecipeInput wraps the full-replace request for Huma.
type ReplaceRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
	Body          RecipeRequest
}

// PatchRecipeRequest is the request body for partial recipe updates.
// Omitted fields, including the association lists, are left untouched.
type PatchRecipeRequest struct {
	Title       *string   `json:"title,omitempty" doc:"Recipe title"`
	TimeMinutes *int      `json:"time_minutes,omitempty" doc:"Preparation time in minutes"`
	Price       *string   `json:"price,omitempty" doc:"Price as a decimal string"`
	Link        *string   `json:"link,omitempty" doc:"External link"`
	Tags        *[]string `json:"tags,omitempty" doc:"Tag IDs to associate"`
	Ingredients *[]string `json:"ingredients,omitempty" doc:"Ingredient IDs to associate"`
}

// UpdateRecipeInput wraps the partial update request for Huma.
type UpdateRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
	Body          PatchRecipeRequest
}

// DeleteRecipeInput contains parameters for deleting a recipe.
type DeleteRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
}

// DeleteRecipeOutput is an empty response for recipe deletion.
type DeleteRecipeOutput struct{}

// mapRecipeResponse converts a domain recipe into its API shape.
func mapRecipeResponse(r *domain.Recipe) RecipeResponse {
	tags := make([]TagResponse, len(r.Tags))
	for i, t := range r.Tags {
		tags[i] = TagResponse{
			ID:        t.ID,
			Name:      t.Name,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		}
	}

	ingredients := make([]IngredientResponse, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = IngredientResponse{
			ID:        ing.ID,
			Name:      ing.Name,
			CreatedAt: ing.CreatedAt,
			UpdatedAt: ing.UpdatedAt,
		}
	}

	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.String(),
		Link:        r.Link,
		Tags:        tags,
		Ingredients: ingredients,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, input *ListRecipesInput) (*ListRecipesOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipes, err := s.services.Recipe.ListRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]RecipeResponse, len(recipes))
	for i, r := range recipes {
		resp[i] = mapRecipeResponse(r)
	}

	return &ListRecipesOutput{Body: ListRecipesResponse{Recipes: resp}}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipe.CreateRecipe(ctx, userID, service.CreateRecipeRequest{
		Title:         input.Body.Title,
		TimeMinutes:   input.Body.TimeMinutes,
		Price:         input.Body.Price,
		Link:          input.Body.Link,
		TagIDs:        input.Body.Tags,
		IngredientIDs: input.Body.Ingredients,
	})
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeResponse(recipe)}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *GetRecipeInput) (*RecipeOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipe.GetRecipe(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeResponse(recipe)}, nil
}

func (s *Server) handleReplaceRecipe(ctx context.Context, input *ReplaceRecipeInput) (*RecipeOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipe.UpdateRecipe(ctx, userID, input.ID, service.UpdateRecipeRequest{
		Title:         input.Body.Title,
		TimeMinutes:   input.Body.TimeMinutes,
		Price:         input.Body.Price,
		Link:          input.Body.Link,
		TagIDs:        input.Body.Tags,
		IngredientIDs: input.Body.Ingredients,
	})
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeResponse(recipe)}, nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipe.PatchRecipe(ctx, userID, input.ID, service.PatchRecipeRequest{
		Title:         input.Body.Title,
		TimeMinutes:   input.Body.TimeMinutes,
		Price:         input.Body.Price,
		Link:          input.Body.Link,
		TagIDs:        input.Body.Tags,
		IngredientIDs: input.Body.Ingredients,
	})
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeResponse(recipe)}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *DeleteRecipeInput) (*DeleteRecipeOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Recipe.DeleteRecipe(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &DeleteRecipeOutput{}, nil
}
