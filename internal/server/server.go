// Package server exposes the inbound HTTP surface: submit-turn,
// fetch-history and clear-history, all behind bearer authentication.
package server

import (
	"context"
	"net/http"

	"chatrelay/internal/config"
	"chatrelay/internal/eventbus"
	"chatrelay/internal/memory"
	"chatrelay/internal/security"
)

// Invoker issues model completions. Implemented by llm.Dispatcher.
type Invoker interface {
	InvokeWithMemory(ctx context.Context, model, sessionID, message string) (string, error)
}

// Server routes chat requests to the memory registry and the dispatcher.
type Server struct {
	verifier security.Verifier
	registry *memory.Registry
	invoker  Invoker
	bus      *eventbus.Bus
	httpSrv  *http.Server
}

// New creates a server listening on cfg.Addr.
func New(cfg config.ServerConfig, verifier security.Verifier, registry *memory.Registry, invoker Invoker, bus *eventbus.Bus) *Server {
	s := &Server{
		verifier: verifier,
		registry: registry,
		invoker:  invoker,
		bus:      bus,
	}

	s.httpSrv = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler builds the route table with auth and request-id middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.requireAuth(s.handleChat))
	mux.HandleFunc("GET /api/chat/history", s.requireAuth(s.handleHistory))
	mux.HandleFunc("DELETE /api/chat/history", s.requireAuth(s.handleClearHistory))
	mux.HandleFunc("GET /api/chat/debug", s.requireAuth(s.handleDebug))
	return withRequestID(mux)
}

// ListenAndServe blocks serving requests until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	return s.httpSrv.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
