package binspire

import (
	"log/slog"
	"time"

	"github.com/xraph/binspire/plugin"
	"github.com/xraph/binspire/store"
)

// Option is a functional option for the Engine.
type Option func(*Engine)

// WithStore sets the composite store.
func WithStore(s store.Store) Option { return func(e *Engine) { e.store = s } }

// WithCache sets the user cache.
func WithCache(c Cache) Option { return func(e *Engine) { e.cache = c } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithConfig sets the engine configuration.
func WithConfig(c Config) Option { return func(e *Engine) { e.config = c } }

// WithClock sets the time source used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithPlugin registers a plugin with the engine.
func WithPlugin(x plugin.Plugin) Option {
	return func(e *Engine) {
		if e.plugins == nil {
			e.plugins = plugin.NewRegistry(e.logger)
		}
		e.plugins.Register(x)
	}
}
