// Package server exposes the solver over WebSocket for interactive front ends.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/videopoker/paytable"
	"github.com/lox/videopoker/solver"
)

// Config holds server settings.
type Config struct {
	// DefaultPayTable is used when a request names none.
	DefaultPayTable string
	// SolveTimeout bounds how long a client waits for a reply. The solve itself
	// always runs to completion so that its cache entries stay exact.
	SolveTimeout time.Duration
}

// DefaultConfig returns the default server settings.
func DefaultConfig() Config {
	return Config{
		DefaultPayTable: "9/6",
		SolveTimeout:    30 * time.Second,
	}
}

// Option configures a Server.
type Option func(*Server)

// WithConfig replaces the default settings.
func WithConfig(cfg Config) Option {
	return func(s *Server) { s.config = cfg }
}

// WithClock sets the clock used for timestamps and timeouts.
func WithClock(c quartz.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// Server represents the WebSocket server
type Server struct {
	upgrader    websocket.Upgrader
	solver      *solver.Solver
	tables      *paytable.Registry
	config      Config
	clock       quartz.Clock
	logger      *log.Logger
	mu          sync.RWMutex
	connections map[*Connection]struct{}
}

// NewServer creates a new WebSocket server
func NewServer(s *solver.Solver, tables *paytable.Registry, logger *log.Logger, opts ...Option) *Server {
	srv := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		solver:      s,
		tables:      tables,
		config:      DefaultConfig(),
		clock:       quartz.NewReal(),
		logger:      logger.WithPrefix("server"),
		connections: make(map[*Connection]struct{}),
	}
	for _, opt := range opts {
		opt(srv)
	}
	if srv.config.SolveTimeout <= 0 {
		srv.config.SolveTimeout = DefaultConfig().SolveTimeout
	}
	if srv.config.DefaultPayTable == "" {
		srv.config.DefaultPayTable = DefaultConfig().DefaultPayTable
	}
	return srv
}

// Handler returns the HTTP handler serving /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting WebSocket server", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	s.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ConnectionCount returns the number of open client connections.
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) register(c *Connection) {
	s.mu.Lock()
	s.connections[c] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)
}

func (s *Server) unregister(c *Connection) {
	s.mu.Lock()
	_, ok := s.connections[c]
	delete(s.connections, c)
	total := len(s.connections)
	s.mu.Unlock()
	if ok {
		s.logger.Info("Client disconnected", "total", total)
	}
}

func (s *Server) closeAll() {
	s.mu.RLock()
	conns := make([]*Connection, 0, len(s.connections))
	for c := range s.connections {
		conns = append(conns, c)
	}
	s.mu.RUnlock()

	for _, c := range conns {
		_ = c.Close() // Ignore close errors during shutdown
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s)
	s.register(client)
	client.Start()

	go func() {
		<-client.ctx.Done()
		s.unregister(client)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}
