package organization

import (
	"context"
)

// Store defines persistence operations for organizations.
type Store interface {
	// CreateOrganization persists a new organization.
	CreateOrganization(ctx context.Context, o *Organization) error

	// GetOrganization retrieves an organization by ID.
	GetOrganization(ctx context.Context, orgID string) (*Organization, error)

	// UpdateOrganization persists changes to an organization.
	UpdateOrganization(ctx context.Context, o *Organization) error

	// DeleteOrganization removes an organization. Audits, history and issues
	// of the organization are removed with it; users are not, and the delete
	// fails while any user still references the organization.
	DeleteOrganization(ctx context.Context, orgID string) error

	// ListOrganizations returns organizations, newest first.
	ListOrganizations(ctx context.Context, filter *ListFilter) ([]*Organization, error)

	// CountOrganizations returns the number of organizations.
	CountOrganizations(ctx context.Context, filter *ListFilter) (int64, error)
}
