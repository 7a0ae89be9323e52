package service_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/recipevault/recipevault-server/internal/auth"
	"github.com/recipevault/recipevault-server/internal/domain"
	"github.com/recipevault/recipevault-server/internal/service"
	"github.com/recipevault/recipevault-server/internal/store/sqlite"
	"github.com/recipevault/recipevault-server/internal/validation"
)

// testEnv wires the services against a real sqlite store in a temp dir.
type testEnv struct {
	store       *sqlite.Store
	auth        *service.AuthService
	profile     *service.ProfileService
	tags        *service.TagService
	ingredients *service.IngredientService
	recipes     *service.RecipeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug}))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	key := bytes.Repeat([]byte{0x2a}, 32)
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	v := validation.New()

	return &testEnv{
		store:       st,
		auth:        service.NewAuthService(st, tokens, v, logger),
		profile:     service.NewProfileService(st, v, logger),
		tags:        service.NewTagService(st, v, logger),
		ingredients: service.NewIngredientService(st, v, logger),
		recipes:     service.NewRecipeService(st, v, logger),
	}
}

// registerUser creates a user through the auth service and returns it.
func (e *testEnv) registerUser(t *testing.T, email, password string) *domain.User {
	t.Helper()

	user, err := e.auth.Register(context.Background(), service.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     "Test User",
	})
	require.NoError(t, err)
	return user
}
