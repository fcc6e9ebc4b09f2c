// Package extension provides a Forge extension entry point for Binspire.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/binspire"
	"github.com/xraph/binspire/api"
	"github.com/xraph/binspire/cache"
	"github.com/xraph/binspire/metrics"
	"github.com/xraph/binspire/plugin"
	"github.com/xraph/binspire/server"
	"github.com/xraph/binspire/store"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "binspire"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "MCP and REST CRUD facade over Binspire organizations, users, audits, histories and issues"

// ExtensionVersion is the semantic version.
const ExtensionVersion = server.ImplementationVersion

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Binspire as a Forge extension.
type Extension struct {
	config     Config
	eng        *binspire.Engine
	apiHandler *api.API
	mcp        *server.Server
	metrics    *metrics.Collector
	logger     *slog.Logger
	engineOpts []binspire.Option
	plugins    []plugin.Plugin
}

// New creates a Binspire Forge extension with the given options.
func New(opts ...ExtOption) *Extension {
	e := &Extension{config: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extension name.
func (e *Extension) Name() string { return ExtensionName }

// Description returns the extension description.
func (e *Extension) Description() string { return ExtensionDescription }

// Version returns the extension version.
func (e *Extension) Version() string { return ExtensionVersion }

// Dependencies returns the list of extension names this extension depends on.
func (e *Extension) Dependencies() []string { return []string{} }

// Engine returns the underlying Binspire engine.
func (e *Extension) Engine() *binspire.Engine { return e.eng }

// API returns the API handler.
func (e *Extension) API() *api.API { return e.apiHandler }

// MCP returns the MCP server bound to the engine.
func (e *Extension) MCP() *server.Server { return e.mcp }

// Metrics returns the Prometheus collector, nil when metrics are disabled.
func (e *Extension) Metrics() *metrics.Collector { return e.metrics }

// Register implements [forge.Extension]. It initializes the engine,
// registers it in the DI container, and optionally registers HTTP routes.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.init(fapp); err != nil {
		return err
	}

	if err := vessel.Provide(fapp.Container(), func() (*binspire.Engine, error) {
		return e.eng, nil
	}); err != nil {
		return fmt.Errorf("binspire: register engine in container: %w", err)
	}
	if e.metrics != nil {
		if err := vessel.Provide(fapp.Container(), func() (*metrics.Collector, error) {
			return e.metrics, nil
		}); err != nil {
			return fmt.Errorf("binspire: register metrics in container: %w", err)
		}
	}

	return nil
}

func (e *Extension) init(fapp forge.App) error {
	var injected []binspire.Option
	// Try to resolve store from DI container, fall back to option-provided store.
	if s, err := forge.Inject[store.Store](fapp.Container()); err == nil {
		injected = append(injected, binspire.WithStore(s))
	}
	return e.build(fapp.Router(), injected)
}

// build creates the engine, the MCP server and the API handler. Routes are
// registered on router when it is non-nil.
func (e *Extension) build(router forge.Router, injected []binspire.Option) error {
	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := make([]binspire.Option, 0, len(injected)+len(e.engineOpts)+len(e.plugins)+4)
	opts = append(opts, binspire.WithLogger(logger), binspire.WithConfig(binspire.Config{
		EagerLoadUsers: e.config.EagerLoadUsers,
	}))
	opts = append(opts, injected...)

	if e.config.UserCacheTTL > 0 {
		opts = append(opts, binspire.WithCache(cache.NewMemory(
			cache.WithTTL(e.config.UserCacheTTL),
			cache.WithMaxSize(e.config.UserCacheSize),
		)))
	}

	// Append user-provided options (may override store).
	opts = append(opts, e.engineOpts...)

	if !e.config.DisableMetrics {
		e.metrics = metrics.New()
		opts = append(opts, binspire.WithPlugin(e.metrics))
	}
	for _, x := range e.plugins {
		opts = append(opts, binspire.WithPlugin(x))
	}

	eng, err := binspire.NewEngine(opts...)
	if err != nil {
		return fmt.Errorf("binspire: create engine: %w", err)
	}
	e.eng = eng

	srvOpts := []server.Option{server.WithLogger(logger)}
	if e.metrics != nil {
		srvOpts = append(srvOpts, server.WithMetrics(e.metrics))
	}
	e.mcp, err = server.New(eng, server.Config{
		Transport: server.TransportHTTP,
		Path:      e.config.MCPPath,
	}, srvOpts...)
	if err != nil {
		return fmt.Errorf("binspire: create MCP server: %w", err)
	}

	e.apiHandler = api.New(eng, router)

	if !e.config.DisableRoutes && router != nil {
		if err := e.apiHandler.RegisterRoutes(router); err != nil {
			return fmt.Errorf("binspire: register routes: %w", err)
		}
	}

	return nil
}

// Start begins the engine and runs migrations if enabled.
func (e *Extension) Start(ctx context.Context) error {
	if e.eng == nil {
		return errors.New("binspire: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.eng.Store().Migrate(ctx); err != nil {
			return fmt.Errorf("binspire: migration failed: %w", err)
		}
	}

	return e.eng.Start(ctx)
}

// Stop gracefully shuts down the engine.
func (e *Extension) Stop(ctx context.Context) error {
	if e.eng == nil {
		return nil
	}
	return e.eng.Stop(ctx)
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.eng == nil {
		return errors.New("binspire: extension not initialized")
	}
	return e.eng.Store().Ping(ctx)
}

// Handler returns the HTTP handler serving the MCP endpoint, /healthz,
// /metrics and the REST API.
func (e *Extension) Handler() http.Handler {
	if e.mcp == nil {
		return http.NotFoundHandler()
	}
	return e.mcp.Handler()
}

// RegisterRoutes registers all Binspire API routes into a Forge router.
func (e *Extension) RegisterRoutes(router forge.Router) error {
	if e.apiHandler != nil {
		return e.apiHandler.RegisterRoutes(router)
	}
	return nil
}
