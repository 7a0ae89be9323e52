package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recipevault/recipevault-server/internal/domain"
	"github.com/recipevault/recipevault-server/internal/store"
)

// recipeColumns is the ordered list of columns selected in recipe queries.
// Must match the scan order in scanRecipe.
const recipeColumns = `id, user_id, title, time_minutes, price, link, created_at, updated_at`

// scanRecipe scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Recipe. Associations are loaded separately.
func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var r domain.Recipe

	var (
		price     string
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.TimeMinutes,
		&price,
		&r.Link,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRecipe inserts a recipe and its tag/ingredient associations in a
// single transaction. Returns store.ErrTagNotFound or
// store.ErrIngredientNotFound when an associated ID does not exist.
func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipes (id, user_id, title, time_minutes, price, link, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.ID,
		recipe.UserID,
		recipe.Title,
		recipe.TimeMinutes,
		recipe.Price.String(),
		recipe.Link,
		formatTime(recipe.CreatedAt),
		formatTime(recipe.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}

	if err := setRecipeTagsTx(ctx, tx, recipe.ID, recipe.TagIDs()); err != nil {
		return err
	}
	if err := setRecipeIngredientsTx(ctx, tx, recipe.ID, recipe.IngredientIDs()); err != nil {
		return err
	}

	return tx.Commit()
}

// GetRecipe retrieves a recipe with its associations, scoped to its owner.
// Returns store.ErrRecipeNotFound if the recipe does not exist or belongs
// to another user.
func (s *Store) GetRecipe(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ? AND user_id = ?`,
		recipeID, userID)

	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadRecipeAssociations(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipes returns the user's recipes with associations, newest first.
func (s *Store) ListRecipes(ctx context.Context, userID string) ([]*domain.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []*domain.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range recipes {
		if err := s.loadRecipeAssociations(ctx, r); err != nil {
			return nil, err
		}
	}

	return recipes, nil
}

// UpdateRecipe updates a recipe row and replaces its associations in a
// single transaction. The recipe's Tags and Ingredients are taken as the
// complete new association set.
// Returns store.ErrRecipeNotFound if the recipe does not exist or belongs
// to another user.
func (s *Store) UpdateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE recipes SET
			title = ?,
			time_minutes = ?,
			price = ?,
			link = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ?`,
		recipe.Title,
		recipe.TimeMinutes,
		recipe.Price.String(),
		recipe.Link,
		formatTime(recipe.UpdatedAt),
		recipe.ID,
		recipe.UserID,
	)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrRecipeNotFound
	}

	if err := setRecipeTagsTx(ctx, tx, recipe.ID, recipe.TagIDs()); err != nil {
		return err
	}
	if err := setRecipeIngredientsTx(ctx, tx, recipe.ID, recipe.IngredientIDs()); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteRecipe removes a recipe, scoped to its owner. Association rows are
// removed by cascade. Returns store.ErrRecipeNotFound if the recipe does
// not exist or belongs to another user.
func (s *Store) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = ? AND user_id = ?`, recipeID, userID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrRecipeNotFound
	}
	return nil
}

// setRecipeTagsTx replaces all tag associations for a recipe within an open
// transaction. It deletes existing recipe_tags rows and inserts the new set,
// verifying each tag exists.
func setRecipeTagsTx(ctx context.Context, tx *sql.Tx, recipeID string, tagIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, recipeID); err != nil {
		return fmt.Errorf("delete recipe_tags: %w", err)
	}

	now := formatTime(time.Now().UTC())
	for _, tagID := range tagIDs {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM tags WHERE id = ?`, tagID).Scan(&exists)
		if err == sql.ErrNoRows {
			return store.ErrTagNotFound
		}
		if err != nil {
			return fmt.Errorf("check tag: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO recipe_tags (recipe_id, tag_id, created_at)
			VALUES (?, ?, ?)`,
			recipeID,
			tagID,
			now,
		)
		if err != nil {
			return fmt.Errorf("insert recipe_tag: %w", err)
		}
	}

	return nil
}

// setRecipeIngredientsTx replaces all ingredient associations for a recipe
// within an open transaction.
func setRecipeIngredientsTx(ctx context.Context, tx *sql.Tx, recipeID string, ingredientIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipeID); err != nil {
		return fmt.Errorf("delete recipe_ingredients: %w", err)
	}

	now := formatTime(time.Now().UTC())
	for _, ingredientID := range ingredientIDs {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM ingredients WHERE id = ?`, ingredientID).Scan(&exists)
		if err == sql.ErrNoRows {
			return store.ErrIngredientNotFound
		}
		if err != nil {
			return fmt.Errorf("check ingredient: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, created_at)
			VALUES (?, ?, ?)`,
			recipeID,
			ingredientID,
			now,
		)
		if err != nil {
			return fmt.Errorf("insert recipe_ingredient: %w", err)
		}
	}

	return nil
}

// loadRecipeAssociations populates the recipe's Tags and Ingredients.
func (s *Store) loadRecipeAssociations(ctx context.Context, r *domain.Recipe) error {
	tags, err := s.recipeTags(ctx, r.ID)
	if err != nil {
		return err
	}
	r.Tags = tags

	ingredients, err := s.recipeIngredients(ctx, r.ID)
	if err != nil {
		return err
	}
	r.Ingredients = ingredients

	return nil
}

// recipeTags returns the tags associated with a recipe, ordered by name
// descending to match ListTags.
func (s *Store) recipeTags(ctx context.Context, recipeID string) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.name, t.created_at, t.updated_at
		FROM tags t
		JOIN recipe_tags rt ON rt.tag_id = t.id
		WHERE rt.recipe_id = ?
		ORDER BY t.name DESC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe tags: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

// recipeIngredients returns the ingredients associated with a recipe,
// ordered by name descending to match ListIngredients.
func (s *Store) recipeIngredients(ctx context.Context, recipeID string) ([]domain.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.user_id, i.name, i.created_at, i.updated_at
		FROM ingredients i
		JOIN recipe_ingredients ri ON ri.ingredient_id = i.id
		WHERE ri.recipe_id = ?
		ORDER BY i.name DESC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := []domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, *ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ingredients, nil
}
