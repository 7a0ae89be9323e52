// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/recipevault/recipevault-server/internal/auth"
	"github.com/recipevault/recipevault-server/internal/domain"
	domainerrors "github.com/recipevault/recipevault-server/internal/errors"
	"github.com/recipevault/recipevault-server/internal/id"
	"github.com/recipevault/recipevault-server/internal/store"
	"github.com/recipevault/recipevault-server/internal/validation"
)

// AuthService handles user registration, token issuance and verification.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	validator    *validation.Validator
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store store.Store,
	tokenService *auth.TokenService,
	validator *validation.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		validator:    validator,
		logger:       logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	Name     string `json:"name" validate:"omitempty,max=255"`
}

// TokenRequest contains user credentials for token issuance.
type TokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse contains an issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Register creates a new user account.
// The email's domain part is lowercased before storage so lookups stay
// consistent regardless of how the client cased it.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	return s.createUser(ctx, req.Email, req.Password, req.Name, false)
}

// CreateSuperuser creates a user with staff and superuser privileges.
// Used by the superuser CLI, not exposed over HTTP.
func (s *AuthService) CreateSuperuser(ctx context.Context, email, password, name string) (*domain.User, error) {
	req := RegisterRequest{Email: email, Password: password, Name: name}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	return s.createUser(ctx, email, password, name, true)
}

func (s *AuthService) createUser(ctx context.Context, email, password, name string, superuser bool) (*domain.User, error) {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Email:        domain.NormalizeEmail(email),
		Name:         name,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			// Surfaced as a field validation failure so clients see the
			// same 400 shape as any other bad registration input.
			return nil, domainerrors.ValidationWithDetails("validation failed", map[string]string{
				"email": "a user with this email already exists",
			})
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("user registered",
			"user_id", userID,
			"superuser", superuser,
		)
	}

	return user, nil
}

// IssueToken authenticates a user by email and password and returns a new
// access token. Bad credentials of any kind answer with the same
// invalid-credentials error so nothing leaks about which part was wrong.
func (s *AuthService) IssueToken(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.InvalidCredentials("unable to authenticate with provided credentials")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("unable to authenticate with provided credentials")
	}

	if !user.IsActive {
		return nil, domainerrors.InvalidCredentials("unable to authenticate with provided credentials")
	}

	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("token issued", "user_id", user.ID)
	}

	return &TokenResponse{Token: token}, nil
}

// VerifyAccessToken validates a bearer token and returns its claims.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}

	// The account may have been deactivated since the token was issued.
	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}
	if !user.IsActive {
		return nil, domainerrors.Unauthorized("account is inactive")
	}

	return claims, nil
}
