package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xraph/binspire"
	"github.com/xraph/binspire/cache"
	"github.com/xraph/binspire/metrics"
	"github.com/xraph/binspire/server"
)

func newServeCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools over stdio or streamable HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := settingsFromViper(c.v)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return c.serve(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringP("transport", "t", server.TransportStdio, "transport: stdio or http")
	flags.String("addr", "", "HTTP listen address (overrides --port)")
	flags.IntP("port", "p", 3000, "HTTP listen port")
	flags.String("mcp-path", "/mcp", "HTTP path of the streamable MCP endpoint")
	flags.Bool("migrate", true, "run schema migrations before serving")
	flags.Bool("rest", true, "serve the REST API under /v1 in HTTP mode")
	flags.Bool("metrics", true, "collect Prometheus metrics and serve /metrics in HTTP mode")
	flags.Bool("eager-load-users", true, "attach the owning user to histories and issues")
	flags.Duration("user-cache-ttl", cache.DefaultTTL, "how long eager-loaded users are cached (0 disables the cache)")
	flags.Int("user-cache-size", cache.DefaultMaxSize, "maximum number of cached users")

	mustBindFlag(c.v, keyTransport, flags.Lookup("transport"))
	mustBindFlag(c.v, keyAddr, flags.Lookup("addr"))
	mustBindFlag(c.v, keyPort, flags.Lookup("port"))
	mustBindFlag(c.v, keyMCPPath, flags.Lookup("mcp-path"))
	mustBindFlag(c.v, keyMigrate, flags.Lookup("migrate"))
	mustBindFlag(c.v, keyREST, flags.Lookup("rest"))
	mustBindFlag(c.v, keyMetrics, flags.Lookup("metrics"))
	mustBindFlag(c.v, keyEagerLoadUsers, flags.Lookup("eager-load-users"))
	mustBindFlag(c.v, keyUserCacheTTL, flags.Lookup("user-cache-ttl"))
	mustBindFlag(c.v, keyUserCacheSize, flags.Lookup("user-cache-size"))
	return cmd
}

// buildServer opens the store and wires the engine and the MCP server.
// The returned cleanup stops the engine and closes the store.
func (c *cli) buildServer(ctx context.Context, cfg settings) (*server.Server, func(), error) {
	s, backend, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if backend == backendMemory {
		c.logger.Warn("no database URL set; rows live in memory and are lost on exit")
	}
	closeStore := func() {
		if err := s.Close(); err != nil {
			c.logger.Warn("close store", "error", err)
		}
	}

	if cfg.Migrate {
		if err := s.Migrate(ctx); err != nil {
			closeStore()
			return nil, nil, fmt.Errorf("migrate %s store: %w", backend, err)
		}
	}

	eager := cfg.EagerLoadUsers
	opts := []binspire.Option{
		binspire.WithStore(s),
		binspire.WithLogger(c.logger),
		binspire.WithConfig(binspire.Config{EagerLoadUsers: &eager}),
	}
	if cfg.UserCacheTTL > 0 {
		opts = append(opts, binspire.WithCache(cache.NewMemory(
			cache.WithTTL(cfg.UserCacheTTL),
			cache.WithMaxSize(cfg.UserCacheSize),
		)))
	}
	var srvOpts []server.Option
	if cfg.Metrics {
		collector := metrics.New()
		opts = append(opts, binspire.WithPlugin(collector))
		srvOpts = append(srvOpts, server.WithMetrics(collector))
	}
	srvOpts = append(srvOpts, server.WithLogger(c.logger))

	eng, err := binspire.NewEngine(opts...)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	if err := eng.Start(ctx); err != nil {
		closeStore()
		return nil, nil, err
	}
	cleanup := func() {
		if err := eng.Stop(context.Background()); err != nil {
			c.logger.Warn("stop engine", "error", err)
		}
		closeStore()
	}

	srv, err := server.New(eng, cfg.Server, srvOpts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	c.logger.Info("binspire ready", "backend", backend, "transport", srv.Config().Transport)
	return srv, cleanup, nil
}

func (c *cli) serve(ctx context.Context, cfg settings) error {
	srv, cleanup, err := c.buildServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return srv.Run(ctx)
}
