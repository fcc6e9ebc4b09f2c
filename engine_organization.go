package binspire

import (
	"context"
	"fmt"

	"github.com/xraph/binspire/id"
	"github.com/xraph/binspire/organization"
)

// CreateOrganization inserts a new organization and returns the stored row.
func (e *Engine) CreateOrganization(ctx context.Context, in *organization.CreateInput) (*organization.Organization, error) {
	o := in.Organization()
	if o.ID == "" {
		o.ID = id.NewOrganizationID()
	}
	e.stamp(&o.CreatedAt, &o.UpdatedAt)

	if err := e.store.CreateOrganization(ctx, o); err != nil {
		return nil, fmt.Errorf("binspire: create organization: %w", err)
	}
	created, err := readBack(ctx, EntityOrganization, o.ID, e.store.GetOrganization)
	if err != nil {
		return nil, err
	}
	e.plugins.EmitEntityCreated(ctx, EntityOrganization, created.ID, created)
	return created, nil
}

// GetOrganization returns the organization with the given ID.
func (e *Engine) GetOrganization(ctx context.Context, orgID string) (*organization.Organization, error) {
	return e.store.GetOrganization(ctx, orgID)
}

// UpdateOrganization applies the set fields of in to an existing
// organization.
func (e *Engine) UpdateOrganization(ctx context.Context, orgID string, in *organization.UpdateInput) (*organization.Organization, error) {
	o, err := e.store.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	o.UpdatedAt = e.timestamp()
	in.Apply(o)

	if err := e.store.UpdateOrganization(ctx, o); err != nil {
		return nil, fmt.Errorf("binspire: update organization: %w", err)
	}
	updated, err := reread(ctx, EntityOrganization, o.ID, e.store.GetOrganization)
	if err != nil {
		return nil, err
	}
	e.plugins.EmitEntityUpdated(ctx, EntityOrganization, updated.ID, updated)
	return updated, nil
}

// DeleteOrganization removes an organization. It fails with ErrConstraint
// while users still reference it.
func (e *Engine) DeleteOrganization(ctx context.Context, orgID string) error {
	if _, err := e.store.GetOrganization(ctx, orgID); err != nil {
		return err
	}
	if err := e.store.DeleteOrganization(ctx, orgID); err != nil {
		return fmt.Errorf("binspire: delete organization: %w", err)
	}
	e.plugins.EmitEntityDeleted(ctx, EntityOrganization, orgID)
	return nil
}

// ListOrganizations returns organizations, newest first. A nil filter
// returns every row.
func (e *Engine) ListOrganizations(ctx context.Context, filter *organization.ListFilter) ([]*organization.Organization, error) {
	orgs, err := e.store.ListOrganizations(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("binspire: list organizations: %w", err)
	}
	return orgs, nil
}

// CountOrganizations returns the number of organizations.
func (e *Engine) CountOrganizations(ctx context.Context, filter *organization.ListFilter) (int64, error) {
	return e.store.CountOrganizations(ctx, filter)
}
