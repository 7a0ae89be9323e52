package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) createTag(t *testing.T, token, name string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/recipe/tags", map[string]any{
		"name": name,
	}, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var tag TagResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tag))
	return tag.ID
}

func (ts *testServer) createIngredient(t *testing.T, token, name string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/recipe/ingredients", map[string]any{
		"name": name,
	}, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var ingredient IngredientResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &ingredient))
	return ingredient.ID
}

func (ts *testServer) createRecipe(t *testing.T, token string, body map[string]any) RecipeResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/recipe/recipes", body, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var recipe RecipeResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &recipe))
	return recipe
}

func TestCreateRecipe_WithAssociations(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	tagID := ts.createTag(t, token, "Dessert")
	ingredientID := ts.createIngredient(t, token, "Sugar")

	recipe := ts.createRecipe(t, token, map[string]any{
		"title":        "Chocolate Cake",
		"time_minutes": 45,
		"price":        "19.99",
		"link":         "https://example.com/cake",
		"tags":         []string{tagID},
		"ingredients":  []string{ingredientID},
	})

	assert.NotEmpty(t, recipe.ID)
	assert.Equal(t, "Chocolate Cake", recipe.Title)
	assert.Equal(t, 45, recipe.TimeMinutes)
	assert.Equal(t, "19.99", recipe.Price)
	require.Len(t, recipe.Tags, 1)
	assert.Equal(t, "Dessert", recipe.Tags[0].Name)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "Sugar", recipe.Ingredients[0].Name)
}

func TestCreateRecipe_UnknownTagID(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	resp := ts.api.Post("/api/v1/recipe/recipes", map[string]any{
		"title": "Soup",
		"price": "5.00",
		"tags":  []string{"tag_missing"},
	}, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Get("/api/v1/recipe/recipes", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListRecipesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Empty(t, list.Recipes, "failed create must roll back entirely")
}

func TestCreateRecipe_BadPrice(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	resp := ts.api.Post("/api/v1/recipe/recipes", map[string]any{
		"title": "Soup",
		"price": "cheap",
	}, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetRecipe_OtherUsersRecipe(t *testing.T) {
	ts := setupTestServer(t)
	owner := ts.createTestUser(t, "owner@example.com")
	other := ts.createTestUser(t, "other@example.com")

	recipe := ts.createRecipe(t, owner, map[string]any{
		"title": "Secret Sauce",
		"price": "3.50",
	})

	resp := ts.api.Get("/api/v1/recipe/recipes/"+recipe.ID, "Authorization: Bearer "+other)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestReplaceRecipe_ClearsOmittedTags(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	tagID := ts.createTag(t, token, "Dinner")
	recipe := ts.createRecipe(t, token, map[string]any{
		"title": "Stew",
		"price": "8.00",
		"tags":  []string{tagID},
	})
	require.Len(t, recipe.Tags, 1)

	resp := ts.api.Put("/api/v1/recipe/recipes/"+recipe.ID, map[string]any{
		"title":        "Winter Stew",
		"time_minutes": 90,
		"price":        "9.50",
	}, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated RecipeResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "Winter Stew", updated.Title)
	assert.Empty(t, updated.Tags, "full replace without tags clears them")
}

func TestReplaceRecipe_ReplacesTagSet(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	oldTag := ts.createTag(t, token, "Dinner")
	newTag := ts.createTag(t, token, "Comfort Food")

	recipe := ts.createRecipe(t, token, map[string]any{
		"title": "Stew",
		"price": "8.00",
		"tags":  []string{oldTag},
	})

	resp := ts.api.Put("/api/v1/recipe/recipes/"+recipe.ID, map[string]any{
		"title": "Stew",
		"price": "8.00",
		"tags":  []string{newTag},
	}, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var updated RecipeResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, newTag, updated.Tags[0].ID, "tag set is exactly the one sent")
}

func TestUpdateRecipe_PartialLeavesAssociations(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	tagID := ts.createTag(t, token, "Dinner")
	recipe := ts.createRecipe(t, token, map[string]any{
		"title":        "Stew",
		"time_minutes": 60,
		"price":        "8.00",
		"tags":         []string{tagID},
	})

	resp := ts.api.Patch("/api/v1/recipe/recipes/"+recipe.ID, map[string]any{
		"title": "Winter Stew",
	}, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var patched RecipeResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &patched))
	assert.Equal(t, "Winter Stew", patched.Title)
	assert.Equal(t, 60, patched.TimeMinutes)
	require.Len(t, patched.Tags, 1, "patch without tags keeps the associations")
	assert.Equal(t, tagID, patched.Tags[0].ID)
}

func TestDeleteRecipe_Success(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	recipe := ts.createRecipe(t, token, map[string]any{
		"title": "Stew",
		"price": "8.00",
	})

	resp := ts.api.Delete("/api/v1/recipe/recipes/"+recipe.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/recipe/recipes/"+recipe.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListRecipes_ScopedToOwner(t *testing.T) {
	ts := setupTestServer(t)
	owner := ts.createTestUser(t, "owner@example.com")
	other := ts.createTestUser(t, "other@example.com")

	ts.createRecipe(t, owner, map[string]any{
		"title": "Stew",
		"price": "8.00",
	})

	resp := ts.api.Get("/api/v1/recipe/recipes", "Authorization: Bearer "+other)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListRecipesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Empty(t, list.Recipes)
}
