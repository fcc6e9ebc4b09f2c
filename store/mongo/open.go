package mongo

import (
	"context"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"
)

// Open connects to the MongoDB deployment at uri and returns a store over
// it. The database name is taken from the URI path.
func Open(ctx context.Context, uri string) (*Store, error) {
	drv := mongodriver.New()
	if err := drv.Open(ctx, uri); err != nil {
		return nil, fmt.Errorf("binspire: open mongo: %w", err)
	}
	db, err := grove.Open(drv)
	if err != nil {
		return nil, fmt.Errorf("binspire: open grove db: %w", err)
	}
	return New(db), nil
}
