package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIngredients_RequiresToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/recipe/ingredients")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreateIngredient_Success(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	resp := ts.api.Post("/api/v1/recipe/ingredients", map[string]any{
		"name": "Flour",
	}, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var ingredient IngredientResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &ingredient))
	assert.NotEmpty(t, ingredient.ID)
	assert.Equal(t, "Flour", ingredient.Name)
}

func TestCreateIngredient_EmptyName(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	resp := ts.api.Post("/api/v1/recipe/ingredients", map[string]any{
		"name": "",
	}, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListIngredients_OrderedByNameDescending(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	for _, name := range []string{"Butter", "Sugar", "Flour"} {
		resp := ts.api.Post("/api/v1/recipe/ingredients", map[string]any{
			"name": name,
		}, "Authorization: Bearer "+token)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := ts.api.Get("/api/v1/recipe/ingredients", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListIngredientsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Ingredients, 3)
	assert.Equal(t, "Sugar", list.Ingredients[0].Name)
	assert.Equal(t, "Flour", list.Ingredients[1].Name)
	assert.Equal(t, "Butter", list.Ingredients[2].Name)
}

func TestListIngredients_ScopedToOwner(t *testing.T) {
	ts := setupTestServer(t)
	first := ts.createTestUser(t, "first@example.com")
	second := ts.createTestUser(t, "second@example.com")

	resp := ts.api.Post("/api/v1/recipe/ingredients", map[string]any{
		"name": "Salt",
	}, "Authorization: Bearer "+first)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Get("/api/v1/recipe/ingredients", "Authorization: Bearer "+second)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListIngredientsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Empty(t, list.Ingredients)
}
