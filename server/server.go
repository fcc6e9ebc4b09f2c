// Package server exposes a Binspire engine as an MCP server over stdio or
// streamable HTTP. In HTTP mode the same listener also serves /healthz,
// /metrics and the REST API under /v1.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xraph/binspire"
	"github.com/xraph/binspire/api"
	"github.com/xraph/binspire/metrics"
	"github.com/xraph/binspire/middleware"
	"github.com/xraph/binspire/tools"
)

// Implementation identifies the server to MCP clients.
const (
	ImplementationName    = "Binspire MCP Server"
	ImplementationVersion = "1.0.0"
)

const instructions = `Binspire MCP server: CRUD tools over organizations, users, audits, histories and issues.
- Each entity has get-all-<plural>, get-<entity>-by-id, create-<entity>, update-<entity> and delete-<entity>.
- get-all-users, get-all-histories and get-all-issues take optional limit (1-100, default 10) and offset (>= 1, default 10).
- update tools take {"id": ..., "data": {...}}; omitted fields keep their value.
- A missing row is reported as a plain message, not an error.`

// Server is a configured MCP server bound to an engine.
type Server struct {
	cfg     Config
	eng     *binspire.Engine
	mcp     *mcpsdk.Server
	metrics *metrics.Collector
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for lifecycle messages and the MCP server.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics serves c on /metrics in HTTP mode.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Server) { s.metrics = c }
}

// New builds the MCP server and registers every tool.
func New(eng *binspire.Engine, cfg Config, opts ...Option) (*Server, error) {
	if eng == nil {
		return nil, errors.New("binspire: engine is required")
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, eng: eng}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = eng.Logger()
	}

	s.mcp = mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    ImplementationName,
		Version: ImplementationVersion,
	}, &mcpsdk.ServerOptions{
		Instructions: instructions,
		Logger:       s.logger,
	})
	tools.New(eng, s.logger).Register(s.mcp)
	return s, nil
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpsdk.Server { return s.mcp }

// Config returns the normalized configuration.
func (s *Server) Config() Config { return s.cfg }

// Handler returns the HTTP handler used in HTTP mode.
func (s *Server) Handler() http.Handler {
	streamable := mcpsdk.NewStreamableHTTPHandler(func(_ *http.Request) *mcpsdk.Server {
		return s.mcp
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(s.cfg.Path, middleware.Organization(streamable))
	mux.HandleFunc("/healthz", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	if !s.cfg.DisableREST {
		mux.Handle("/v1/", middleware.Organization(api.New(s.eng, nil).Handler()))
	}
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := s.eng.Store().Ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}

// Run serves until ctx is cancelled or the transport fails.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Transport == TransportHTTP {
		return s.runHTTP(ctx)
	}
	s.logger.Info("starting binspire MCP server", "transport", TransportStdio)
	err := s.mcp.Run(ctx, &mcpsdk.StdioTransport{})
	if err == nil || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("binspire: stdio transport: %w", err)
}

func (s *Server) runHTTP(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}
	s.logger.Info("starting binspire MCP server", "transport", TransportHTTP, "listen", s.cfg.Addr, "mcp_path", s.cfg.Path)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("binspire MCP server stopped")
		return nil
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("binspire: listen %s: %w", s.cfg.Addr, err)
	}
}

// TransportFromEnv maps the TRANSPORT environment value to a transport.
// Unset means stdio; any value other than "stdio" selects HTTP.
func TransportFromEnv(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", TransportStdio:
		return TransportStdio
	default:
		return TransportHTTP
	}
}
