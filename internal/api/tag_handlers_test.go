package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTags_RequiresToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/recipe/tags")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestListTags_EmptyInitially(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	resp := ts.api.Get("/api/v1/recipe/tags", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Empty(t, list.Tags)
}

func TestCreateTag_Success(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	resp := ts.api.Post("/api/v1/recipe/tags", map[string]any{
		"name": "Dessert",
	}, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var tag TagResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tag))
	assert.NotEmpty(t, tag.ID)
	assert.Equal(t, "Dessert", tag.Name)
}

func TestCreateTag_EmptyName(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	resp := ts.api.Post("/api/v1/recipe/tags", map[string]any{
		"name": "",
	}, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Get("/api/v1/recipe/tags", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Empty(t, list.Tags, "failed create must not persist a row")
}

func TestListTags_OrderedByNameDescending(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "cook@example.com")

	for _, name := range []string{"Breakfast", "Vegan", "Dessert"} {
		resp := ts.api.Post("/api/v1/recipe/tags", map[string]any{
			"name": name,
		}, "Authorization: Bearer "+token)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := ts.api.Get("/api/v1/recipe/tags", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Tags, 3)
	assert.Equal(t, "Vegan", list.Tags[0].Name)
	assert.Equal(t, "Dessert", list.Tags[1].Name)
	assert.Equal(t, "Breakfast", list.Tags[2].Name)
}

func TestListTags_ScopedToOwner(t *testing.T) {
	ts := setupTestServer(t)
	first := ts.createTestUser(t, "first@example.com")
	second := ts.createTestUser(t, "second@example.com")

	resp := ts.api.Post("/api/v1/recipe/tags", map[string]any{
		"name": "Dinner",
	}, "Authorization: Bearer "+first)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Get("/api/v1/recipe/tags", "Authorization: Bearer "+second)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Empty(t, list.Tags, "one user's tags must not leak to another")
}
