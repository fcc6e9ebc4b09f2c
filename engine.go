package binspire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/binspire/plugin"
	"github.com/xraph/binspire/store"
	"github.com/xraph/binspire/user"
)

// Engine is the central CRUD engine. It coordinates the store, the user
// cache and plugin hooks.
type Engine struct {
	store   store.Store
	cache   Cache
	plugins *plugin.Registry
	logger  *slog.Logger
	config  Config
	now     func() time.Time
}

// NewEngine creates a new Binspire engine with the given options.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: slog.Default(),
		config: DefaultConfig(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		return nil, ErrStoreRequired
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e, nil
}

// Store returns the underlying composite store.
func (e *Engine) Store() store.Store { return e.store }

// Plugins returns the plugin registry (may be nil).
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Start checks store connectivity.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.store.Ping(ctx); err != nil {
		return fmt.Errorf("binspire: ping store: %w", err)
	}
	return nil
}

// Stop notifies plugins of shutdown.
func (e *Engine) Stop(ctx context.Context) error {
	e.plugins.EmitShutdown(ctx)
	return nil
}

// timestamp returns the current time at the precision every backend keeps.
func (e *Engine) timestamp() time.Time {
	return e.now().UTC().Truncate(time.Millisecond)
}

// stamp fills zero createdAt and updatedAt values.
func (e *Engine) stamp(createdAt, updatedAt *time.Time) {
	now := e.timestamp()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}

// readBack re-reads a row after insertion. A missing row is reported as
// ErrCreateFailed.
func readBack[T any](ctx context.Context, entity, id string, get func(context.Context, string) (T, error)) (T, error) {
	v, err := get(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, ErrNotFound) {
			return zero, createFailed(entity)
		}
		return zero, fmt.Errorf("binspire: read back %s: %w", entity, err)
	}
	return v, nil
}

// reread returns a row as the store holds it after an update. A row removed
// in between keeps wrapping ErrNotFound.
func reread[T any](ctx context.Context, entity, id string, get func(context.Context, string) (T, error)) (T, error) {
	v, err := get(ctx, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("binspire: read back %s: %w", entity, err)
	}
	return v, nil
}

// owner loads the user that owns a history entry or issue. A missing user
// yields nil without error.
func (e *Engine) owner(ctx context.Context, userID string) (*user.User, error) {
	if e.cache != nil {
		if u, ok := e.cache.GetUser(ctx, userID); ok {
			return u, nil
		}
	}
	u, err := e.store.GetUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("binspire: load user %s: %w", userID, err)
	}
	if e.cache != nil {
		e.cache.SetUser(ctx, u)
	}
	return u, nil
}

// owners loads each distinct user once.
func (e *Engine) owners(ctx context.Context, userIDs []string) (map[string]*user.User, error) {
	out := make(map[string]*user.User, len(userIDs))
	for _, uid := range userIDs {
		if _, ok := out[uid]; ok {
			continue
		}
		u, err := e.owner(ctx, uid)
		if err != nil {
			return nil, err
		}
		out[uid] = u
	}
	return out, nil
}

func (e *Engine) invalidateUser(ctx context.Context, userID string) {
	if e.cache != nil {
		e.cache.InvalidateUser(ctx, userID)
	}
}
