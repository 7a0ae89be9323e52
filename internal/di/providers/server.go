package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/recipevault/recipevault-server/internal/api"
	"github.com/recipevault/recipevault-server/internal/config"
	"github.com/recipevault/recipevault-server/internal/logger"
	"github.com/recipevault/recipevault-server/internal/maintenance"
	"github.com/recipevault/recipevault-server/internal/ratelimit"
	"github.com/recipevault/recipevault-server/internal/service"
)

// AuthRateLimiterHandle wraps the auth rate limiter with shutdown capability.
type AuthRateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *AuthRateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideAuthRateLimiter provides the per-IP limiter for token issuance.
func ProvideAuthRateLimiter(i do.Injector) (*AuthRateLimiterHandle, error) {
	// 20 attempts per minute with a burst of 10 per client IP.
	rps := 20.0 / time.Minute.Seconds()
	return &AuthRateLimiterHandle{KeyedRateLimiter: ratelimit.New(rps, 10)}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	flag := do.MustInvoke[*maintenance.Flag](i)
	limiterHandle := do.MustInvoke[*AuthRateLimiterHandle](i)

	services := &api.Services{
		Auth:       do.MustInvoke[*service.AuthService](i),
		Profile:    do.MustInvoke[*service.ProfileService](i),
		Tag:        do.MustInvoke[*service.TagService](i),
		Ingredient: do.MustInvoke[*service.IngredientService](i),
		Recipe:     do.MustInvoke[*service.RecipeService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, flag, limiterHandle.KeyedRateLimiter, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
