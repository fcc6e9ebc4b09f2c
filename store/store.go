// Package store defines the aggregate persistence interface. Each entity
// package (organization, user, audit, history, issue) defines its own store
// interface. The composite Store composes them all.
// Backends: Postgres, SQLite, MongoDB and Memory.
package store

import (
	"context"

	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/history"
	"github.com/xraph/binspire/issue"
	"github.com/xraph/binspire/organization"
	"github.com/xraph/binspire/user"
)

// Store is the aggregate persistence interface.
// A single backend (postgres, sqlite, mongo, memory) implements all of them.
type Store interface {
	organization.Store
	user.Store
	audit.Store
	history.Store
	issue.Store

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
