package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/recipevault/recipevault-server/internal/domain"
	"github.com/recipevault/recipevault-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, email, email_lower, name, password_hash,
	is_active, is_staff, is_superuser, created_at, updated_at`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User

	var (
		emailLower  string
		isActive    int
		isStaff     int
		isSuperuser int
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&u.ID,
		&u.Email,
		&emailLower,
		&u.Name,
		&u.PasswordHash,
		&isActive,
		&isStaff,
		&isSuperuser,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.IsActive = isActive != 0
	u.IsStaff = isStaff != 0
	u.IsSuperuser = isSuperuser != 0

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUser inserts a new user into the database.
// Returns store.ErrEmailExists if a user with the same email already exists,
// compared case-insensitively.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	emailLower := strings.ToLower(strings.TrimSpace(user.Email))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, email_lower, name, password_hash,
			is_active, is_staff, is_superuser, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		emailLower,
		user.Name,
		user.PasswordHash,
		boolToInt(user.IsActive),
		boolToInt(user.IsStaff),
		boolToInt(user.IsSuperuser),
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrEmailExists
		}
		return err
	}
	return nil
}

// GetUser retrieves a user by ID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email, compared case-insensitively.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	lower := strings.ToLower(strings.TrimSpace(email))
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_lower = ?`, lower)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser performs a full row update on an existing user.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	emailLower := strings.ToLower(strings.TrimSpace(user.Email))

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			email = ?,
			email_lower = ?,
			name = ?,
			password_hash = ?,
			is_active = ?,
			is_staff = ?,
			is_superuser = ?,
			created_at = ?,
			updated_at = ?
		WHERE id = ?`,
		user.Email,
		emailLower,
		user.Name,
		user.PasswordHash,
		boolToInt(user.IsActive),
		boolToInt(user.IsStaff),
		boolToInt(user.IsSuperuser),
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		user.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrEmailExists
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrUserNotFound
	}
	return nil
}
