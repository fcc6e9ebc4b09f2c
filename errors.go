package binspire

import (
	"errors"
	"fmt"

	"github.com/xraph/binspire/store"
)

var (
	// ErrStoreRequired is returned by NewEngine when no store is configured.
	ErrStoreRequired = errors.New("binspire: store is required")

	// ErrNotFound is returned when a row cannot be found. It is the same
	// value every store backend wraps.
	ErrNotFound = store.ErrNotFound

	// ErrConstraint is returned when a write violates a foreign key or
	// unique constraint.
	ErrConstraint = store.ErrConstraint

	// ErrCreateFailed is returned when a row cannot be read back after
	// insertion.
	ErrCreateFailed = errors.New("failed to create")
)

// createFailed reports a row missing after insertion, e.g.
// "failed to create audit".
func createFailed(entity string) error {
	return fmt.Errorf("%w %s", ErrCreateFailed, entity)
}
