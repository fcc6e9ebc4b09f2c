package history

import (
	"context"
)

// Store defines persistence operations for history entries.
type Store interface {
	// CreateHistory persists a new history entry.
	CreateHistory(ctx context.Context, h *History) error

	// GetHistory retrieves a history entry by ID. The User relation is not
	// populated.
	GetHistory(ctx context.Context, historyID string) (*History, error)

	// UpdateHistory persists changes to a history entry.
	UpdateHistory(ctx context.Context, h *History) error

	// DeleteHistory removes a history entry by ID.
	DeleteHistory(ctx context.Context, historyID string) error

	// ListHistories returns history entries matching the filter, newest first.
	ListHistories(ctx context.Context, filter *ListFilter) ([]*History, error)

	// CountHistories returns the number of history entries matching the filter.
	CountHistories(ctx context.Context, filter *ListFilter) (int64, error)
}
