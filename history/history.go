// Package history defines the History entity and its store interface.
// History rows form the activity feed shown to an organization.
package history

import (
	"time"

	"github.com/xraph/binspire/enum"
	"github.com/xraph/binspire/user"
)

// History is a single activity feed entry.
type History struct {
	ID        string            `json:"id" db:"id"`
	Title     string            `json:"title" db:"title"`
	Entity    enum.SystemEntity `json:"entity" db:"entity"`
	OrgID     string            `json:"orgId" db:"org_id"`
	UserID    string            `json:"userId" db:"user_id"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`

	// User is the owning user, populated when the entry is loaded with
	// its relations.
	User *user.User `json:"user,omitempty" db:"-"`
}

// ListFilter contains filters for listing history entries.
type ListFilter struct {
	OrgID  string `json:"orgId,omitempty"`
	UserID string `json:"userId,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}
