package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recipevault/recipevault-server/internal/domain"
	"github.com/recipevault/recipevault-server/internal/store"
)

// makeTestRecipe creates a domain.Recipe with sensible defaults for testing.
func makeTestRecipe(id, userID, title string) *domain.Recipe {
	now := time.Now()
	return &domain.Recipe{
		ID:          id,
		UserID:      userID,
		Title:       title,
		TimeMinutes: 30,
		Price:       decimal.RequireFromString("5.50"),
		Link:        "https://example.com/recipe",
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
}

func TestCreateAndGetRecipe(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")

	recipe := makeTestRecipe("recipe-1", "user-1", "Pancakes")
	if err := s.CreateRecipe(ctx, recipe); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	got, err := s.GetRecipe(ctx, "user-1", "recipe-1")
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}

	if got.Title != "Pancakes" {
		t.Errorf("Title: got %q, want %q", got.Title, "Pancakes")
	}
	if got.TimeMinutes != 30 {
		t.Errorf("TimeMinutes: got %d, want 30", got.TimeMinutes)
	}
	if !got.Price.Equal(decimal.RequireFromString("5.50")) {
		t.Errorf("Price: got %s, want 5.50", got.Price)
	}
	if got.Link != "https://example.com/recipe" {
		t.Errorf("Link: got %q", got.Link)
	}
	if len(got.Tags) != 0 {
		t.Errorf("expected no tags, got %d", len(got.Tags))
	}
	if len(got.Ingredients) != 0 {
		t.Errorf("expected no ingredients, got %d", len(got.Ingredients))
	}
}

func TestCreateRecipe_WithAssociations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")

	tag := makeTestTag("tag-1", "user-1", "breakfast")
	if err := s.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	ing := makeTestIngredient("ing-1", "user-1", "flour")
	if err := s.CreateIngredient(ctx, ing); err != nil {
		t.Fatalf("CreateIngredient: %v", err)
	}

	recipe := makeTestRecipe("recipe-1", "user-1", "Pancakes")
	recipe.Tags = []domain.Tag{{ID: "tag-1"}}
	recipe.Ingredients = []domain.Ingredient{{ID: "ing-1"}}

	if err := s.CreateRecipe(ctx, recipe); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	got, err := s.GetRecipe(ctx, "user-1", "recipe-1")
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}

	if len(got.Tags) != 1 || got.Tags[0].Name != "breakfast" {
		t.Errorf("Tags: got %+v, want one tag 'breakfast'", got.Tags)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].Name != "flour" {
		t.Errorf("Ingredients: got %+v, want one ingredient 'flour'", got.Ingredients)
	}
}

func TestCreateRecipe_UnknownTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")

	recipe := makeTestRecipe("recipe-1", "user-1", "Pancakes")
	recipe.Tags = []domain.Tag{{ID: "no-such-tag"}}

	err := s.CreateRecipe(ctx, recipe)
	if !errors.Is(err, store.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}

	// The recipe row must not have been committed.
	_, err = s.GetRecipe(ctx, "user-1", "recipe-1")
	if !errors.Is(err, store.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound after rollback, got %v", err)
	}
}

func TestCreateRecipe_UnknownIngredient(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")

	recipe := makeTestRecipe("recipe-1", "user-1", "Pancakes")
	recipe.Ingredients = []domain.Ingredient{{ID: "no-such-ingredient"}}

	err := s.CreateRecipe(ctx, recipe)
	if !errors.Is(err, store.ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}
}

func TestGetRecipe_OtherOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")
	mustCreateUser(t, s, "user-2", "other@example.com")

	if err := s.CreateRecipe(ctx, makeTestRecipe("recipe-1", "user-1", "Pancakes")); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	_, err := s.GetRecipe(ctx, "user-2", "recipe-1")
	if !errors.Is(err, store.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestListRecipes_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"First", "Second", "Third"} {
		r := makeTestRecipe("recipe-"+title, "user-1", title)
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		r.UpdatedAt = r.CreatedAt
		if err := s.CreateRecipe(ctx, r); err != nil {
			t.Fatalf("CreateRecipe %s: %v", title, err)
		}
	}

	recipes, err := s.ListRecipes(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}

	want := []string{"Third", "Second", "First"}
	if len(recipes) != len(want) {
		t.Fatalf("expected %d recipes, got %d", len(want), len(recipes))
	}
	for i, title := range want {
		if recipes[i].Title != title {
			t.Errorf("recipes[%d]: got %q, want %q", i, recipes[i].Title, title)
		}
	}
}

func TestListRecipes_ScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")
	mustCreateUser(t, s, "user-2", "other@example.com")

	if err := s.CreateRecipe(ctx, makeTestRecipe("recipe-1", "user-1", "Mine")); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	if err := s.CreateRecipe(ctx, makeTestRecipe("recipe-2", "user-2", "Theirs")); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	recipes, err := s.ListRecipes(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}
	if recipes[0].Title != "Mine" {
		t.Errorf("got %q, want Mine", recipes[0].Title)
	}
}

func TestUpdateRecipe_ReplacesAssociations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")

	for _, name := range []string{"breakfast", "dessert"} {
		if err := s.CreateTag(ctx, makeTestTag("tag-"+name, "user-1", name)); err != nil {
			t.Fatalf("CreateTag: %v", err)
		}
	}

	recipe := makeTestRecipe("recipe-1", "user-1", "Pancakes")
	recipe.Tags = []domain.Tag{{ID: "tag-breakfast"}}
	if err := s.CreateRecipe(ctx, recipe); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	// Replace the tag set entirely.
	recipe.Title = "Crepes"
	recipe.Tags = []domain.Tag{{ID: "tag-dessert"}}
	recipe.Touch()
	if err := s.UpdateRecipe(ctx, recipe); err != nil {
		t.Fatalf("UpdateRecipe: %v", err)
	}

	got, err := s.GetRecipe(ctx, "user-1", "recipe-1")
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got.Title != "Crepes" {
		t.Errorf("Title: got %q, want Crepes", got.Title)
	}
	if len(got.Tags) != 1 || got.Tags[0].ID != "tag-dessert" {
		t.Errorf("Tags: got %+v, want only tag-dessert", got.Tags)
	}
}

func TestUpdateRecipe_ClearsAssociations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")

	if err := s.CreateTag(ctx, makeTestTag("tag-1", "user-1", "vegan")); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	recipe := makeTestRecipe("recipe-1", "user-1", "Salad")
	recipe.Tags = []domain.Tag{{ID: "tag-1"}}
	if err := s.CreateRecipe(ctx, recipe); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	recipe.Tags = nil
	if err := s.UpdateRecipe(ctx, recipe); err != nil {
		t.Fatalf("UpdateRecipe: %v", err)
	}

	got, err := s.GetRecipe(ctx, "user-1", "recipe-1")
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if len(got.Tags) != 0 {
		t.Errorf("expected no tags, got %+v", got.Tags)
	}
}

func TestUpdateRecipe_NotFound(t *testing.T) {
	s := newTestStore(t)

	mustCreateUser(t, s, "user-1", "cook@example.com")

	recipe := makeTestRecipe("ghost", "user-1", "Nothing")
	err := s.UpdateRecipe(context.Background(), recipe)
	if !errors.Is(err, store.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestUpdateRecipe_OtherOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")
	mustCreateUser(t, s, "user-2", "other@example.com")

	if err := s.CreateRecipe(ctx, makeTestRecipe("recipe-1", "user-1", "Mine")); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	intruder := makeTestRecipe("recipe-1", "user-2", "Hijacked")
	err := s.UpdateRecipe(ctx, intruder)
	if !errors.Is(err, store.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestDeleteRecipe(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")

	if err := s.CreateTag(ctx, makeTestTag("tag-1", "user-1", "vegan")); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	recipe := makeTestRecipe("recipe-1", "user-1", "Salad")
	recipe.Tags = []domain.Tag{{ID: "tag-1"}}
	if err := s.CreateRecipe(ctx, recipe); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	if err := s.DeleteRecipe(ctx, "user-1", "recipe-1"); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}

	_, err := s.GetRecipe(ctx, "user-1", "recipe-1")
	if !errors.Is(err, store.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}

	// Association rows must be gone.
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM recipe_tags WHERE recipe_id = 'recipe-1'`).Scan(&n); err != nil {
		t.Fatalf("count recipe_tags: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 recipe_tags rows, got %d", n)
	}

	// The tag itself survives.
	if _, err := s.GetTag(ctx, "user-1", "tag-1"); err != nil {
		t.Errorf("tag should survive recipe deletion: %v", err)
	}
}

func TestDeleteRecipe_NotFound(t *testing.T) {
	s := newTestStore(t)

	mustCreateUser(t, s, "user-1", "cook@example.com")

	err := s.DeleteRecipe(context.Background(), "user-1", "nonexistent")
	if !errors.Is(err, store.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestDeleteRecipe_OtherOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")
	mustCreateUser(t, s, "user-2", "other@example.com")

	if err := s.CreateRecipe(ctx, makeTestRecipe("recipe-1", "user-1", "Mine")); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	err := s.DeleteRecipe(ctx, "user-2", "recipe-1")
	if !errors.Is(err, store.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}

	// Still there for the owner.
	if _, err := s.GetRecipe(ctx, "user-1", "recipe-1"); err != nil {
		t.Errorf("recipe should survive: %v", err)
	}
}

func TestRecipe_PricePrecision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "cook@example.com")

	recipe := makeTestRecipe("recipe-1", "user-1", "Pancakes")
	recipe.Price = decimal.RequireFromString("19.99")
	if err := s.CreateRecipe(ctx, recipe); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	got, err := s.GetRecipe(ctx, "user-1", "recipe-1")
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got.Price.String() != "19.99" {
		t.Errorf("Price: got %s, want 19.99", got.Price)
	}
}
