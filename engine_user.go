package binspire

import (
	"context"
	"fmt"

	"github.com/xraph/binspire/id"
	"github.com/xraph/binspire/user"
)

// CreateUser inserts a new user and returns the stored row.
func (e *Engine) CreateUser(ctx context.Context, in *user.CreateInput) (*user.User, error) {
	u := in.User()
	if u.ID == "" {
		u.ID = id.NewUserID()
	}
	e.stamp(&u.CreatedAt, &u.UpdatedAt)

	if err := e.store.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("binspire: create user: %w", err)
	}
	created, err := readBack(ctx, EntityUser, u.ID, e.store.GetUser)
	if err != nil {
		return nil, err
	}
	e.plugins.EmitEntityCreated(ctx, EntityUser, created.ID, created)
	return created, nil
}

// GetUser returns the user with the given ID.
func (e *Engine) GetUser(ctx context.Context, userID string) (*user.User, error) {
	return e.store.GetUser(ctx, userID)
}

// UpdateUser applies the set fields of in to an existing user.
func (e *Engine) UpdateUser(ctx context.Context, userID string, in *user.UpdateInput) (*user.User, error) {
	u, err := e.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt = e.timestamp()
	in.Apply(u)

	if err := e.store.UpdateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("binspire: update user: %w", err)
	}
	e.invalidateUser(ctx, u.ID)
	updated, err := reread(ctx, EntityUser, u.ID, e.store.GetUser)
	if err != nil {
		return nil, err
	}
	e.plugins.EmitEntityUpdated(ctx, EntityUser, updated.ID, updated)
	return updated, nil
}

// DeleteUser removes a user together with the user's audits, history
// entries and issues.
func (e *Engine) DeleteUser(ctx context.Context, userID string) error {
	if _, err := e.store.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := e.store.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("binspire: delete user: %w", err)
	}
	e.invalidateUser(ctx, userID)
	e.plugins.EmitEntityDeleted(ctx, EntityUser, userID)
	return nil
}

// ListUsers returns users, newest first. An unset organization filter
// falls back to the organization scope of ctx.
func (e *Engine) ListUsers(ctx context.Context, filter *user.ListFilter) ([]*user.User, error) {
	f := user.ListFilter{}
	if filter != nil {
		f = *filter
	}
	f.OrgID = scopeFilter(ctx, f.OrgID)

	users, err := e.store.ListUsers(ctx, &f)
	if err != nil {
		return nil, fmt.Errorf("binspire: list users: %w", err)
	}
	return users, nil
}

// CountUsers returns the number of users matching the filter.
func (e *Engine) CountUsers(ctx context.Context, filter *user.ListFilter) (int64, error) {
	f := user.ListFilter{}
	if filter != nil {
		f = *filter
	}
	f.OrgID = scopeFilter(ctx, f.OrgID)
	return e.store.CountUsers(ctx, &f)
}
