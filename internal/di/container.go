// Package di provides dependency injection configuration for the RecipeVault server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/recipevault/recipevault-server/internal/auth"
	"github.com/recipevault/recipevault-server/internal/config"
	"github.com/recipevault/recipevault-server/internal/di/providers"
	"github.com/recipevault/recipevault-server/internal/logger"
	"github.com/recipevault/recipevault-server/internal/maintenance"
	"github.com/recipevault/recipevault-server/internal/service"
	"github.com/recipevault/recipevault-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Maintenance gate
	do.Provide(injector, providers.ProvideMaintenanceFlag)
	do.Provide(injector, providers.ProvideMaintenanceWatcher)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideIngredientService)
	do.Provide(injector, providers.ProvideRecipeService)

	// Server
	do.Provide(injector, providers.ProvideAuthRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*maintenance.Flag](injector)
	_ = do.MustInvoke[*providers.MaintenanceWatcherHandle](injector)

	// Business services
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.ProfileService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.IngredientService](injector)
	_ = do.MustInvoke[*service.RecipeService](injector)

	// Server
	_ = do.MustInvoke[*providers.AuthRateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
