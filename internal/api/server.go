package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ignite/outreach-planner/internal/costing"
	"github.com/ignite/outreach-planner/internal/pipeline"
)

// Server represents the API server
type Server struct {
	handler  http.Handler
	handlers *Handlers
	server   *http.Server
}

// NewServer creates a new API server
func NewServer(engine *pipeline.Engine, scenarios *costing.Registry) *Server {
	handlers := NewHandlers(engine, scenarios)
	router := SetupRoutes(handlers)

	return &Server{
		handler:  router,
		handlers: handlers,
	}
}

// Handlers exposes the handler set so optional storage layers can be wired
// after construction.
func (s *Server) Handlers() *Handlers {
	return s.handlers
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing
func (s *Server) Handler() http.Handler {
	return s.handler
}
