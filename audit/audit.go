// Package audit defines the Audit entity and its store interface. An audit
// row records an action a user performed on some area of the system.
package audit

import (
	"time"

	"github.com/xraph/binspire/enum"
)

// Audit is a single audit trail entry.
type Audit struct {
	ID        string            `json:"id" db:"id"`
	UserID    string            `json:"userId" db:"user_id"`
	OrgID     string            `json:"orgId" db:"org_id"`
	Title     string            `json:"title" db:"title"`
	Entity    enum.SystemEntity `json:"entity" db:"entity"`
	Changes   map[string]any    `json:"changes" db:"changes"`
	Action    enum.AuditAction  `json:"action" db:"action"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`
}

// DefaultChanges returns the value stored when no changes are given.
func DefaultChanges() map[string]any {
	return map[string]any{"after": nil, "before": nil}
}

// ListFilter contains filters for listing audits.
type ListFilter struct {
	OrgID  string `json:"orgId,omitempty"`
	UserID string `json:"userId,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}
