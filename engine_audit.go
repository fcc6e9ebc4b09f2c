package binspire

import (
	"context"
	"fmt"

	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/id"
)

// CreateAudit inserts a new audit entry and returns the stored row.
func (e *Engine) CreateAudit(ctx context.Context, in *audit.CreateInput) (*audit.Audit, error) {
	a := in.Audit()
	if a.ID == "" {
		a.ID = id.NewAuditID()
	}
	e.stamp(&a.CreatedAt, &a.UpdatedAt)

	if err := e.store.CreateAudit(ctx, a); err != nil {
		return nil, fmt.Errorf("binspire: create audit: %w", err)
	}
	created, err := readBack(ctx, EntityAudit, a.ID, e.store.GetAudit)
	if err != nil {
		return nil, err
	}
	e.plugins.EmitEntityCreated(ctx, EntityAudit, created.ID, created)
	return created, nil
}

// GetAudit returns the audit entry with the given ID.
func (e *Engine) GetAudit(ctx context.Context, auditID string) (*audit.Audit, error) {
	return e.store.GetAudit(ctx, auditID)
}

// UpdateAudit applies the set fields of in to an existing audit entry.
func (e *Engine) UpdateAudit(ctx context.Context, auditID string, in *audit.UpdateInput) (*audit.Audit, error) {
	a, err := e.store.GetAudit(ctx, auditID)
	if err != nil {
		return nil, err
	}
	a.UpdatedAt = e.timestamp()
	in.Apply(a)

	if err := e.store.UpdateAudit(ctx, a); err != nil {
		return nil, fmt.Errorf("binspire: update audit: %w", err)
	}
	updated, err := reread(ctx, EntityAudit, a.ID, e.store.GetAudit)
	if err != nil {
		return nil, err
	}
	e.plugins.EmitEntityUpdated(ctx, EntityAudit, updated.ID, updated)
	return updated, nil
}

// DeleteAudit removes an audit entry.
func (e *Engine) DeleteAudit(ctx context.Context, auditID string) error {
	if _, err := e.store.GetAudit(ctx, auditID); err != nil {
		return err
	}
	if err := e.store.DeleteAudit(ctx, auditID); err != nil {
		return fmt.Errorf("binspire: delete audit: %w", err)
	}
	e.plugins.EmitEntityDeleted(ctx, EntityAudit, auditID)
	return nil
}

// ListAudits returns audit entries, newest first. A nil filter returns
// every row of the scoped organization, or every row when unscoped.
func (e *Engine) ListAudits(ctx context.Context, filter *audit.ListFilter) ([]*audit.Audit, error) {
	f := audit.ListFilter{}
	if filter != nil {
		f = *filter
	}
	f.OrgID = scopeFilter(ctx, f.OrgID)

	audits, err := e.store.ListAudits(ctx, &f)
	if err != nil {
		return nil, fmt.Errorf("binspire: list audits: %w", err)
	}
	return audits, nil
}

// CountAudits returns the number of audit entries matching the filter.
func (e *Engine) CountAudits(ctx context.Context, filter *audit.ListFilter) (int64, error) {
	f := audit.ListFilter{}
	if filter != nil {
		f = *filter
	}
	f.OrgID = scopeFilter(ctx, f.OrgID)
	return e.store.CountAudits(ctx, &f)
}
