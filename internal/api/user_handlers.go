package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/recipevault/recipevault-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/api/v1/user/create",
		Summary:       "Register user",
		Description:   "Creates a new user account",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "createToken",
		Method:      http.MethodPost,
		Path:        "/api/v1/user/token",
		Summary:     "Issue access token",
		Description: "Authenticates a user and returns an access token",
		Tags:        []string{"Users"},
	}, s.handleCreateToken)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/user/me",
		Summary:     "Get profile",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCurrentUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/user/me",
		Summary:     "Update profile",
		Description: "Updates the authenticated user's profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCurrentUser)
}

// === DTOs ===

// CreateUserRequest is the request body for user registration. Field rules
// are enforced by the service layer so every failure answers 400.
type CreateUserRequest struct {
	Email    string `json:"email,omitempty" doc:"User email address"`
	Password string `json:"password,omitempty" doc:"User password (min 8 characters)"`
	Name     string `json:"name,omitempty" doc:"Display name"`
}

// CreateUserInput wraps the registration request for Huma.
type CreateUserInput struct {
	Body CreateUserRequest
}

// UserResponse contains user profile data in API responses.
type UserResponse struct {
	Email string `json:"email" doc:"User email"`
	Name  string `json:"name" doc:"Display name"`
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// CreateTokenRequest is the request body for token issuance.
type CreateTokenRequest struct {
	Email    string `json:"email,omitempty" doc:"User email"`
	Password string `json:"password,omitempty" doc:"User password"`
}

// CreateTokenInput wraps the token request with proxy headers for Huma.
type CreateTokenInput struct {
	Body          CreateTokenRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// TokenResponse contains an issued access token.
type TokenResponse struct {
	Token string `json:"token" doc:"PASETO access token"`
}

// TokenOutput wraps the token response for Huma.
type TokenOutput struct {
	Body TokenResponse
}

// GetCurrentUserInput contains parameters for reading the profile.
type GetCurrentUserInput struct {
	Authorization string `header:"Authorization"`
}

// UpdateCurrentUserRequest is the request body for partial profile updates.
// Omitted fields are left untouched.
type UpdateCurrentUserRequest struct {
	Email    *string `json:"email,omitempty" doc:"New email address"`
	Name     *string `json:"name,omitempty" doc:"New display name"`
	Password *string `json:"password,omitempty" doc:"New password (min 8 characters)"`
}

// UpdateCurrentUserInput wraps the profile update request for Huma.
type UpdateCurrentUserInput struct {
	Authorization string `header:"Authorization"`
	Body          UpdateCurrentUserRequest
}

// === Handlers ===

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	user, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
		Name:     input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{
		Body: UserResponse{
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}

func (s *Server) handleCreateToken(ctx context.Context, input *CreateTokenInput) (*TokenOutput, error) {
	key := extractIP(input.XForwardedFor, input.XRealIP)
	if !s.authLimiter.Allow(key) {
		s.logger.Warn("auth rate limit exceeded", "ip", key)
		return nil, huma.Error429TooManyRequests("Too many requests. Please try again later.")
	}

	resp, err := s.services.Auth.IssueToken(ctx, service.TokenRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &TokenOutput{Body: TokenResponse{Token: resp.Token}}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, input *GetCurrentUserInput) (*UserOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Profile.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{
		Body: UserResponse{
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}

func (s *Server) handleUpdateCurrentUser(ctx context.Context, input *UpdateCurrentUserInput) (*UserOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Profile.UpdateProfile(ctx, userID, service.UpdateProfileRequest{
		Email:    input.Body.Email,
		Name:     input.Body.Name,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{
		Body: UserResponse{
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}
