package postgres

import (
	"context"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
)

// Open connects to the PostgreSQL database at dsn and returns a store
// over it. The caller owns the store and must Close it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	drv := pgdriver.New()
	if err := drv.Open(ctx, dsn); err != nil {
		return nil, fmt.Errorf("binspire: open postgres: %w", err)
	}
	db, err := grove.Open(drv)
	if err != nil {
		return nil, fmt.Errorf("binspire: open grove db: %w", err)
	}
	return New(db), nil
}
