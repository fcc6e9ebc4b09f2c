// Package id generates TypeID-based identifiers for Binspire entities.
//
// Entity identifiers are opaque strings: callers may supply their own, and
// the engine falls back to a generated TypeID in the format "prefix_suffix"
// when none is given. Generated IDs are K-sortable (UUIDv7-based), globally
// unique and URL-safe.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a generated ID.
type Prefix string

// Prefix constants for all Binspire entity types.
const (
	PrefixOrganization Prefix = "org"
	PrefixUser         Prefix = "user"
	PrefixAudit        Prefix = "audit"
	PrefixHistory      Prefix = "hist"
	PrefixIssue        Prefix = "issue"
)

// ID wraps a TypeID.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "audit_01h2xcejqtf2nbrexx3vqjhp41").
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix parses a TypeID string and validates that its prefix
// matches the expected value.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// ──────────────────────────────────────────────────
// Convenience constructors
// ──────────────────────────────────────────────────

// NewOrganizationID generates a new organization ID string.
func NewOrganizationID() string { return New(PrefixOrganization).String() }

// NewUserID generates a new user ID string.
func NewUserID() string { return New(PrefixUser).String() }

// NewAuditID generates a new audit ID string.
func NewAuditID() string { return New(PrefixAudit).String() }

// NewHistoryID generates a new history ID string.
func NewHistoryID() string { return New(PrefixHistory).String() }

// NewIssueID generates a new issue ID string.
func NewIssueID() string { return New(PrefixIssue).String() }

// ──────────────────────────────────────────────────
// ID methods
// ──────────────────────────────────────────────────

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}
