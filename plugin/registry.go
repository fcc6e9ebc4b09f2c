package plugin

import (
	"context"
	"log/slog"
)

// Named entry types pair a hook with the plugin name for logging.

type entityCreatedEntry struct {
	name string
	hook EntityCreated
}
type entityUpdatedEntry struct {
	name string
	hook EntityUpdated
}
type entityDeletedEntry struct {
	name string
	hook EntityDeleted
}
type toolCalledEntry struct {
	name string
	hook ToolCalled
}
type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered plugins and dispatches lifecycle events.
// It type-caches plugins at registration time so emit calls iterate
// only over plugins implementing the relevant hook.
//
// A nil *Registry is valid and dispatches nothing.
type Registry struct {
	plugins []Plugin
	logger  *slog.Logger

	entityCreated []entityCreatedEntry
	entityUpdated []entityUpdatedEntry
	entityDeleted []entityDeletedEntry
	toolCalled    []toolCalledEntry
	shutdown      []shutdownEntry
}

// NewRegistry creates a plugin registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Register adds a plugin and type-asserts it into all applicable
// hook caches. Plugins are notified in registration order.
func (r *Registry) Register(p Plugin) {
	r.plugins = append(r.plugins, p)
	name := p.Name()

	if h, ok := p.(EntityCreated); ok {
		r.entityCreated = append(r.entityCreated, entityCreatedEntry{name, h})
	}
	if h, ok := p.(EntityUpdated); ok {
		r.entityUpdated = append(r.entityUpdated, entityUpdatedEntry{name, h})
	}
	if h, ok := p.(EntityDeleted); ok {
		r.entityDeleted = append(r.entityDeleted, entityDeletedEntry{name, h})
	}
	if h, ok := p.(ToolCalled); ok {
		r.toolCalled = append(r.toolCalled, toolCalledEntry{name, h})
	}
	if h, ok := p.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, h})
	}
}

// Plugins returns all registered plugins.
func (r *Registry) Plugins() []Plugin {
	if r == nil {
		return nil
	}
	return r.plugins
}

// ──────────────────────────────────────────────────
// Entity event emitters
// ──────────────────────────────────────────────────

// EmitEntityCreated notifies all plugins that implement EntityCreated.
func (r *Registry) EmitEntityCreated(ctx context.Context, entity, id string, v any) {
	if r == nil {
		return
	}
	for _, e := range r.entityCreated {
		if err := e.hook.OnEntityCreated(ctx, entity, id, v); err != nil {
			r.logHookError("OnEntityCreated", e.name, err)
		}
	}
}

// EmitEntityUpdated notifies all plugins that implement EntityUpdated.
func (r *Registry) EmitEntityUpdated(ctx context.Context, entity, id string, v any) {
	if r == nil {
		return
	}
	for _, e := range r.entityUpdated {
		if err := e.hook.OnEntityUpdated(ctx, entity, id, v); err != nil {
			r.logHookError("OnEntityUpdated", e.name, err)
		}
	}
}

// EmitEntityDeleted notifies all plugins that implement EntityDeleted.
func (r *Registry) EmitEntityDeleted(ctx context.Context, entity, id string) {
	if r == nil {
		return
	}
	for _, e := range r.entityDeleted {
		if err := e.hook.OnEntityDeleted(ctx, entity, id); err != nil {
			r.logHookError("OnEntityDeleted", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Tool event emitter
// ──────────────────────────────────────────────────

// EmitToolCalled notifies all plugins that implement ToolCalled.
func (r *Registry) EmitToolCalled(ctx context.Context, call ToolCall) {
	if r == nil {
		return
	}
	for _, e := range r.toolCalled {
		if err := e.hook.OnToolCalled(ctx, call); err != nil {
			r.logHookError("OnToolCalled", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Shutdown emitter
// ──────────────────────────────────────────────────

// EmitShutdown notifies all plugins that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	if r == nil {
		return
	}
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated.
func (r *Registry) logHookError(hook, pluginName string, err error) {
	r.logger.Warn("plugin hook error",
		slog.String("hook", hook),
		slog.String("plugin", pluginName),
		slog.String("error", err.Error()),
	)
}
