// Package issue defines the Issue entity and its store interface.
package issue

import (
	"time"

	"github.com/xraph/binspire/enum"
	"github.com/xraph/binspire/user"
)

// Issue is a problem report filed by a user.
type Issue struct {
	ID          string            `json:"id" db:"id"`
	UserID      string            `json:"userId" db:"user_id"`
	Title       string            `json:"title" db:"title"`
	Description string            `json:"description" db:"description"`
	Entity      enum.SystemEntity `json:"entity" db:"entity"`
	Priority    enum.Priority     `json:"priority" db:"priority"`
	Status      enum.IssueStatus  `json:"status" db:"status"`
	OrgID       string            `json:"orgId" db:"org_id"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`

	// User is the reporting user, populated when the issue is loaded with
	// its relations.
	User *user.User `json:"user,omitempty" db:"-"`
}

// Column defaults applied when a create payload leaves them out.
const (
	DefaultPriority = enum.PriorityMedium
	DefaultStatus   = enum.StatusOpen
)

// ListFilter contains filters for listing issues.
type ListFilter struct {
	OrgID  string           `json:"orgId,omitempty"`
	UserID string           `json:"userId,omitempty"`
	Status enum.IssueStatus `json:"status,omitempty"`
	Limit  int              `json:"limit,omitempty"`
	Offset int              `json:"offset,omitempty"`
}
