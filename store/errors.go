package store

import "errors"

var (
	// ErrNotFound is wrapped by every backend when a lookup, update or
	// delete by ID matches no row.
	ErrNotFound = errors.New("not found")

	// ErrConstraint is wrapped by every backend when a write violates a
	// foreign key or unique constraint.
	ErrConstraint = errors.New("constraint violation")
)
