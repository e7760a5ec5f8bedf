package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/smartshop/qaforge/internal/api/handlers"
	"github.com/smartshop/qaforge/internal/api/middleware"
	"github.com/smartshop/qaforge/internal/observability"
	"github.com/smartshop/qaforge/pkg/httputil"
)

// Router holds the HTTP router and its dependencies
type Router struct {
	chi.Router
	logger *zap.Logger
}

// RouterConfig contains configuration for the mock API router
type RouterConfig struct {
	Store      *handlers.Store
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	EnableCORS bool
	Version    string
}

// NewRouter creates the mock API router with all routes configured.
// The route surface mirrors the shop API the suites test against.
func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Base middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Handler)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Handler)
	r.Use(chimw.Timeout(60 * time.Second))

	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.HTTPMiddleware)
	}

	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", healthHandler(cfg.Version))
	r.Get("/api/version", versionHandler(cfg.Version))
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	productHandler := handlers.NewProductHandler(cfg.Store, cfg.Logger)
	userHandler := handlers.NewUserHandler(cfg.Store, cfg.Logger)
	orderHandler := handlers.NewOrderHandler(cfg.Store, cfg.Logger)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Get("/search", productHandler.Search)
		r.Get("/{id}", productHandler.Get)
	})

	r.Post("/users", userHandler.Create)
	r.Post("/auth/login", userHandler.Login)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", orderHandler.List)
		r.Post("/", orderHandler.Create)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.Error(w, http.StatusNotFound, "Endpoint not found")
	})

	return &Router{Router: r, logger: cfg.Logger}
}

func healthHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
		})
	}
}

func versionHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{
			"version":       version,
			"status":        "stable",
			"documentation": "/docs",
		})
	}
}
