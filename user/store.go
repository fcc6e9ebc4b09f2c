package user

import (
	"context"
)

// Store defines persistence operations for users.
type Store interface {
	// CreateUser persists a new user. The referenced organization must exist.
	CreateUser(ctx context.Context, u *User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*User, error)

	// UpdateUser persists changes to a user.
	UpdateUser(ctx context.Context, u *User) error

	// DeleteUser removes a user together with the user's audits, history
	// and issues.
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns users matching the filter, newest first.
	ListUsers(ctx context.Context, filter *ListFilter) ([]*User, error)

	// CountUsers returns the number of users matching the filter.
	CountUsers(ctx context.Context, filter *ListFilter) (int64, error)
}
