// Package api provides the HTTP API server and handlers for the RecipeVault application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/recipevault/recipevault-server/internal/maintenance"
	"github.com/recipevault/recipevault-server/internal/ratelimit"
	"github.com/recipevault/recipevault-server/internal/store"
)

// APIVersion is reported in the generated OpenAPI document.
const APIVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       store.Store
	services    *Services
	router      *chi.Mux
	api         huma.API
	logger      *slog.Logger
	authLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured. The
// maintenance flag gates traffic ahead of routing and authentication.
func NewServer(st store.Store, services *Services, maintFlag *maintenance.Flag, authLimiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(MaintenanceMiddleware(maintFlag))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	humaConfig := huma.DefaultConfig("RecipeVault API", APIVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:       st,
		services:    services,
		router:      router,
		api:         api,
		logger:      logger,
		authLimiter: authLimiter,
	}

	s.registerHealthRoutes()
	s.registerUserRoutes()
	s.registerTagRoutes()
	s.registerIngredientRoutes()
	s.registerRecipeRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
