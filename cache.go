package binspire

import (
	"context"

	"github.com/xraph/binspire/user"
)

// Cache holds users loaded as the owner of history entries and issues.
type Cache interface {
	// GetUser returns a cached user, if available.
	GetUser(ctx context.Context, userID string) (*user.User, bool)

	// SetUser stores a user in the cache.
	SetUser(ctx context.Context, u *user.User)

	// InvalidateUser removes a cached user.
	InvalidateUser(ctx context.Context, userID string)
}
