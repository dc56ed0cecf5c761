// Package server provides the HTTP API for dealsense.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/gocanopy/dealsense/internal/app"
	"github.com/gocanopy/dealsense/internal/config"
	"github.com/gocanopy/dealsense/internal/history"
	"github.com/gocanopy/dealsense/internal/search"
)

// Server is the HTTP server for the dealsense API.
type Server struct {
	session *app.Session
	store   history.Store
	index   *search.Index
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies. index may be nil
// when search is disabled.
func NewServer(
	session *app.Session,
	store history.Store,
	index *search.Index,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		session: session,
		store:   store,
		index:   index,
		config:  cfg,
		logger:  logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	// The demo front end is served from a different origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Post("/documents", s.handleUploadDocument)
		r.Get("/session", s.handleSession)
		r.Post("/session/reset", s.handleSessionReset)
		r.Get("/samples", s.handleListSamples)
		r.Post("/samples/{id}", s.handleLoadSample)
		r.Get("/analyses", s.handleListAnalyses)
		r.Get("/analyses/search", s.handleSearchAnalyses)
		r.Get("/analyses/{id}", s.handleGetAnalysis)
		r.Get("/analyses/{id}/share", s.handleShareAnalysis)
		r.Delete("/analyses", s.handleClearAnalyses)
		r.Get("/insights", s.handleInsights)
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
