package sqlite

import (
	"context"
	"database/sql"

	"github.com/recipevault/recipevault-server/internal/domain"
	"github.com/recipevault/recipevault-server/internal/store"
)

// ingredientColumns is the ordered list of columns selected in ingredient
// queries. Must match the scan order in scanIngredient.
const ingredientColumns = `id, user_id, name, created_at, updated_at`

// scanIngredient scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Ingredient.
func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var ing domain.Ingredient

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&ing.ID,
		&ing.UserID,
		&ing.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ing.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	ing.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &ing, nil
}

// CreateIngredient inserts a new ingredient into the database.
func (s *Store) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (id, user_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		ing.ID,
		ing.UserID,
		ing.Name,
		formatTime(ing.CreatedAt),
		formatTime(ing.UpdatedAt),
	)
	return err
}

// GetIngredient retrieves an ingredient by ID, scoped to its owner.
// Returns store.ErrIngredientNotFound if the ingredient does not exist or
// belongs to another user.
func (s *Store) GetIngredient(ctx context.Context, userID, ingredientID string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ? AND user_id = ?`,
		ingredientID, userID)

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrIngredientNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// ListIngredients returns the user's ingredients ordered by name descending.
func (s *Store) ListIngredients(ctx context.Context, userID string) ([]*domain.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE user_id = ? ORDER BY name DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []*domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ingredients, nil
}
