// Package binspire is a CRUD facade over the Binspire relational store.
//
// The Engine exposes create, read, update and delete operations for
// organizations, users, audits, history entries and issues. It assigns
// identifiers and timestamps, checks existence before mutating, eager-loads
// the owning user of history entries and issues, and notifies plugins.
// The tools package serves the engine as MCP tools and the api package as a
// REST API.
//
//	eng, err := binspire.NewEngine(
//	    binspire.WithStore(memory.New()),
//	)
//	a, err := eng.CreateAudit(ctx, &audit.CreateInput{...})
package binspire

// Entity names used in messages, plugin events and tool names.
const (
	EntityOrganization = "organization"
	EntityUser         = "user"
	EntityAudit        = "audit"
	EntityHistory      = "history"
	EntityIssue        = "issue"
)
