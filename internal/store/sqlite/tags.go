package sqlite

import (
	"context"
	"database/sql"

	"github.com/recipevault/recipevault-server/internal/domain"
	"github.com/recipevault/recipevault-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, user_id, name, created_at, updated_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag inserts a new tag into the database.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, user_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID,
		t.UserID,
		t.Name,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	return err
}

// GetTag retrieves a tag by ID, scoped to its owner.
// Returns store.ErrTagNotFound if the tag does not exist or belongs to
// another user.
func (s *Store) GetTag(ctx context.Context, userID, tagID string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ? AND user_id = ?`, tagID, userID)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns the user's tags ordered by name descending.
func (s *Store) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE user_id = ? ORDER BY name DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}
