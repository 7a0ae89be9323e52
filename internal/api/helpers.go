package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// authenticateRequest validates the Authorization header and returns the user ID.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (string, error) {
	if authHeader == "" {
		return "", huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", huma.Error401Unauthorized("Invalid authorization header format")
	}

	claims, err := s.services.Auth.VerifyAccessToken(ctx, parts[1])
	if err != nil {
		return "", huma.Error401Unauthorized("Invalid or expired token")
	}

	return claims.UserID, nil
}

// extractIP picks the client IP from proxy headers, first hop wins.
func extractIP(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		if idx := strings.IndexByte(forwardedFor, ','); idx >= 0 {
			return strings.TrimSpace(forwardedFor[:idx])
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP != "" {
		return realIP
	}
	return "unknown"
}
