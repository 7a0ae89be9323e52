// Package main provides an operator tool to create a superuser account
// directly in the database.
//
// Usage:
//
//	DATA_PATH=~/RecipeVault/data go run ./cmd/superuser -email admin@example.com -password secret123 -name Admin
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/recipevault/recipevault-server/internal/auth"
	"github.com/recipevault/recipevault-server/internal/config"
	"github.com/recipevault/recipevault-server/internal/service"
	"github.com/recipevault/recipevault-server/internal/store/sqlite"
	"github.com/recipevault/recipevault-server/internal/validation"
)

func main() {
	email := flag.String("email", "", "Superuser email address (required)")
	password := flag.String("password", "", "Superuser password, min 8 characters (required)")
	name := flag.String("name", "", "Display name")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "both -email and -password are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	st, err := sqlite.Open(cfg.DBPath(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load auth key: %v\n", err)
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(key, cfg.Auth.AccessTokenDuration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create token service: %v\n", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(st, tokens, validation.New(), logger)

	user, err := authService.CreateSuperuser(context.Background(), *email, *password, *name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create superuser: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Superuser created: %s (%s)\n", user.Email, user.ID)
}
