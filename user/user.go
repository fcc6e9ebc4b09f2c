// Package user defines the User entity and its store interface.
package user

import (
	"time"
)

// User is a member of an organization.
type User struct {
	ID            string    `json:"id" db:"id"`
	OrgID         string    `json:"orgId" db:"org_id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	EmailVerified bool      `json:"emailVerified" db:"email_verified"`
	Image         *string   `json:"image" db:"image"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// ListFilter contains filters for listing users.
type ListFilter struct {
	OrgID  string `json:"orgId,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}
