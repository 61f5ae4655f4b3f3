// Package api exposes the bill-splitting sessions over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/checksplit/checksplit-backend/internal/api/handlers"
	"github.com/checksplit/checksplit-backend/internal/api/middleware"
	"github.com/checksplit/checksplit-backend/internal/observability"
	"github.com/checksplit/checksplit-backend/internal/session"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	store      *session.Store
	scanner    handlers.ReceiptScanner
	metrics    *observability.Metrics
}

// NewServer creates a new API server. If scanner is nil the scan endpoint
// answers with a configuration error; if metrics is nil no metrics are
// collected.
func NewServer(cfg Config, store *session.Store, scanner handlers.ReceiptScanner, metrics *observability.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:  cfg,
		router:  chi.NewRouter(),
		logger:  logger,
		store:   store,
		scanner: scanner,
		metrics: metrics,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	corsConfig := middleware.CORSConfig{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}
	s.router.Use(middleware.CORS(corsConfig))
	s.router.Use(middleware.Logging(s.logger))
	if s.metrics != nil {
		s.router.Use(middleware.Metrics(s.metrics))
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.Get("/health", healthHandler.ServeHTTP)

	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}

	s.router.Route("/api", func(r chi.Router) {
		sessionsHandler := handlers.NewSessionsHandler(s.store)
		receiptHandler := handlers.NewReceiptHandler(s.store, s.scanner, s.logger)
		participantsHandler := handlers.NewParticipantsHandler(s.store)
		splitHandler := handlers.NewSplitHandler(s.store, s.metrics)

		r.Post("/sessions", sessionsHandler.Create)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", sessionsHandler.Get)
			r.Delete("/", sessionsHandler.Delete)
			r.Post("/advance", sessionsHandler.Advance)

			r.Post("/receipt", receiptHandler.Load)
			r.Post("/receipt/scan", receiptHandler.Scan)
			r.Post("/items", receiptHandler.AddItem)
			r.Patch("/items/{index}", receiptHandler.EditItem)
			r.Delete("/items/{index}", receiptHandler.RemoveItem)
			r.Patch("/tax", receiptHandler.EditTax)

			r.Post("/participants", participantsHandler.Add)
			r.Patch("/participants/{index}", participantsHandler.Rename)
			r.Delete("/participants/{index}", participantsHandler.Remove)

			r.Post("/assignments", splitHandler.Assign)
			r.Get("/preview", splitHandler.Preview)
			r.Post("/settle", splitHandler.Settle)
		})
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
