// Package plugin defines the plugin system for Binspire.
// Plugins are notified of lifecycle events (entity created, entity deleted,
// tool called, etc.) and can react: logging, metrics, tracing, etc.
//
// Each lifecycle hook is a separate interface so plugins opt in only
// to the events they care about.
package plugin

import (
	"context"
	"time"
)

// Plugin is the base interface all plugins must implement.
type Plugin interface {
	// Name returns a unique human-readable name for the plugin.
	Name() string
}

// ──────────────────────────────────────────────────
// Entity lifecycle hooks
// ──────────────────────────────────────────────────

// EntityCreated is called after a row is inserted and read back.
// The entity parameter is the singular entity name ("audit", "issue", ...);
// v is the created row (*audit.Audit, *issue.Issue, ...).
type EntityCreated interface {
	OnEntityCreated(ctx context.Context, entity, id string, v any) error
}

// EntityUpdated is called after a row is updated.
type EntityUpdated interface {
	OnEntityUpdated(ctx context.Context, entity, id string, v any) error
}

// EntityDeleted is called after a row is deleted.
type EntityDeleted interface {
	OnEntityDeleted(ctx context.Context, entity, id string) error
}

// ──────────────────────────────────────────────────
// Tool hooks
// ──────────────────────────────────────────────────

// ToolCall describes a finished tool invocation.
type ToolCall struct {
	// Name is the tool name ("create-audit").
	Name string
	// Outcome is "data", "message" or "error".
	Outcome  string
	Duration time.Duration
}

// ToolCalled is called after every tool invocation, successful or not.
type ToolCalled interface {
	OnToolCalled(ctx context.Context, call ToolCall) error
}

// ──────────────────────────────────────────────────
// Shutdown hook
// ──────────────────────────────────────────────────

// Shutdown is called during graceful shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
