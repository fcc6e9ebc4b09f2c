package audit

import (
	"context"
)

// Store defines persistence operations for audits.
type Store interface {
	// CreateAudit persists a new audit. The referenced user and
	// organization must exist.
	CreateAudit(ctx context.Context, a *Audit) error

	// GetAudit retrieves an audit by ID.
	GetAudit(ctx context.Context, auditID string) (*Audit, error)

	// UpdateAudit persists changes to an audit.
	UpdateAudit(ctx context.Context, a *Audit) error

	// DeleteAudit removes an audit by ID.
	DeleteAudit(ctx context.Context, auditID string) error

	// ListAudits returns audits matching the filter, newest first.
	ListAudits(ctx context.Context, filter *ListFilter) ([]*Audit, error)

	// CountAudits returns the number of audits matching the filter.
	CountAudits(ctx context.Context, filter *ListFilter) (int64, error)
}
