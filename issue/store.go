package issue

import (
	"context"
)

// Store defines persistence operations for issues.
type Store interface {
	// CreateIssue persists a new issue.
	CreateIssue(ctx context.Context, i *Issue) error

	// GetIssue retrieves an issue by ID. The User relation is not populated.
	GetIssue(ctx context.Context, issueID string) (*Issue, error)

	// UpdateIssue persists changes to an issue.
	UpdateIssue(ctx context.Context, i *Issue) error

	// DeleteIssue removes an issue by ID.
	DeleteIssue(ctx context.Context, issueID string) error

	// ListIssues returns issues matching the filter, newest first.
	ListIssues(ctx context.Context, filter *ListFilter) ([]*Issue, error)

	// CountIssues returns the number of issues matching the filter.
	CountIssues(ctx context.Context, filter *ListFilter) (int64, error)
}
