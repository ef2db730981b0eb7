// Package api provides the HTTP host for HyperTabs widgets: panel
// collection CRUD and server-side mode resolution.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	widgetmw "github.com/hugo-lorenzo-mato/hypertabs/internal/api/middleware"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/config"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/storage"
)

// WidgetStore is the persistence the server needs.
type WidgetStore interface {
	List(ctx context.Context) ([]storage.WidgetSummary, error)
	Load(ctx context.Context, id string) ([]panel.Panel, error)
	Save(ctx context.Context, id string, panels []panel.Panel) error
	Modify(ctx context.Context, id string, create bool, fn func([]panel.Panel) ([]panel.Panel, error)) ([]panel.Panel, error)
}

// Server provides HTTP REST API endpoints for widget management.
type Server struct {
	router      chi.Router
	store       WidgetStore
	container   config.ContainerConfig
	corsOrigins []string
	logger      *slog.Logger
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCORSOrigins sets the allowed origins. An empty list disables CORS.
func WithCORSOrigins(origins []string) ServerOption {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithContainerConfig sets the container settings used by the resolve
// endpoint.
func WithContainerConfig(cfg config.ContainerConfig) ServerOption {
	return func(s *Server) {
		s.container = cfg
	}
}

// NewServer creates a new API server.
func NewServer(store WidgetStore, opts ...ServerOption) *Server {
	s := &Server{
		store:       store,
		container:   defaultContainerConfig(),
		corsOrigins: []string{"*"},
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.router = s.setupRouter()
	return s
}

func defaultContainerConfig() config.ContainerConfig {
	return config.ContainerConfig{
		Mode:               "tabs",
		ResponsiveCollapse: true,
		Breakpoint:         100,
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures Chi router with all routes and middleware.
func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.loggingMiddleware)

	if len(s.corsOrigins) > 0 {
		corsHandler := cors.New(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "If-Match", "If-None-Match"},
			ExposedHeaders:   []string{"ETag"},
			AllowCredentials: false,
			MaxAge:           300,
		})
		r.Use(corsHandler.Handler)
	}

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/widgets", func(r chi.Router) {
			r.Get("/", s.handleListWidgets)

			r.Route("/{widgetID}", func(r chi.Router) {
				r.Use(widgetmw.WidgetIDMiddleware(s.logger))

				r.Get("/resolve", s.handleResolve)

				r.Route("/panels", func(r chi.Router) {
					r.Get("/", s.handleGetPanels)
					r.Put("/", s.handlePutPanels)
					r.Post("/", s.handleCreatePanel)
					r.Post("/reorder", s.handleReorderPanels)
					r.Delete("/{panelID}", s.handleDeletePanel)
				})
			})
		})
	})

	return r
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"bytes", ww.BytesWritten(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// respondError sends a JSON error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListenAndServe starts the HTTP server and shuts it down when ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting API server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
