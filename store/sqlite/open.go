package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
)

const foreignKeysPragma = "_pragma=foreign_keys(1)"

// Open opens the SQLite database at dsn (a file path or file: URI) with
// foreign key enforcement enabled and returns a store over it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	drv := sqlitedriver.New()
	if err := drv.Open(ctx, withForeignKeys(dsn)); err != nil {
		return nil, fmt.Errorf("binspire: open sqlite: %w", err)
	}
	db, err := grove.Open(drv)
	if err != nil {
		return nil, fmt.Errorf("binspire: open grove db: %w", err)
	}
	return New(db), nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + foreignKeysPragma
	}
	return dsn + "?" + foreignKeysPragma
}
