package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/recipevault/recipevault-server/internal/auth"
	"github.com/recipevault/recipevault-server/internal/domain"
	domainerrors "github.com/recipevault/recipevault-server/internal/errors"
	"github.com/recipevault/recipevault-server/internal/store"
	"github.com/recipevault/recipevault-server/internal/validation"
)

// ProfileService handles the authenticated user's own account.
type ProfileService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store store.Store, validator *validation.Validator, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// UpdateProfileRequest contains partial profile updates. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=1024"`
}

// GetProfile returns the user's account.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial update to the user's account.
// A new password is re-hashed; a new email is normalized before storage.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = domain.NormalizeEmail(*req.Email)
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		passwordHash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = passwordHash
	}
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, domainerrors.ValidationWithDetails("validation failed", map[string]string{
				"email": "a user with this email already exists",
			})
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("profile updated", "user_id", userID)
	}

	return user, nil
}
