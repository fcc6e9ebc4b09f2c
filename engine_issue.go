package binspire

import (
	"context"
	"fmt"

	"github.com/xraph/binspire/id"
	"github.com/xraph/binspire/issue"
)

// CreateIssue inserts a new issue and returns the stored row.
func (e *Engine) CreateIssue(ctx context.Context, in *issue.CreateInput) (*issue.Issue, error) {
	i := in.Issue()
	if i.ID == "" {
		i.ID = id.NewIssueID()
	}
	e.stamp(&i.CreatedAt, &i.UpdatedAt)

	if err := e.store.CreateIssue(ctx, i); err != nil {
		return nil, fmt.Errorf("binspire: create issue: %w", err)
	}
	created, err := readBack(ctx, EntityIssue, i.ID, e.store.GetIssue)
	if err != nil {
		return nil, err
	}
	e.plugins.EmitEntityCreated(ctx, EntityIssue, created.ID, created)
	return created, nil
}

// GetIssue returns the issue with the given ID, with its owning user loaded.
func (e *Engine) GetIssue(ctx context.Context, issueID string) (*issue.Issue, error) {
	i, err := e.store.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if e.config.eagerLoadUsers() {
		if i.User, err = e.owner(ctx, i.UserID); err != nil {
			return nil, err
		}
	}
	return i, nil
}

// UpdateIssue applies the set fields of in to an existing issue.
func (e *Engine) UpdateIssue(ctx context.Context, issueID string, in *issue.UpdateInput) (*issue.Issue, error) {
	i, err := e.store.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	i.UpdatedAt = e.timestamp()
	in.Apply(i)

	if err := e.store.UpdateIssue(ctx, i); err != nil {
		return nil, fmt.Errorf("binspire: update issue: %w", err)
	}
	updated, err := reread(ctx, EntityIssue, i.ID, e.store.GetIssue)
	if err != nil {
		return nil, err
	}
	e.plugins.EmitEntityUpdated(ctx, EntityIssue, updated.ID, updated)
	return updated, nil
}

// DeleteIssue removes an issue.
func (e *Engine) DeleteIssue(ctx context.Context, issueID string) error {
	if _, err := e.store.GetIssue(ctx, issueID); err != nil {
		return err
	}
	if err := e.store.DeleteIssue(ctx, issueID); err != nil {
		return fmt.Errorf("binspire: delete issue: %w", err)
	}
	e.plugins.EmitEntityDeleted(ctx, EntityIssue, issueID)
	return nil
}

// ListIssues returns issues, newest first, each with its owning user
// loaded.
func (e *Engine) ListIssues(ctx context.Context, filter *issue.ListFilter) ([]*issue.Issue, error) {
	f := issue.ListFilter{}
	if filter != nil {
		f = *filter
	}
	f.OrgID = scopeFilter(ctx, f.OrgID)

	issues, err := e.store.ListIssues(ctx, &f)
	if err != nil {
		return nil, fmt.Errorf("binspire: list issues: %w", err)
	}
	if !e.config.eagerLoadUsers() {
		return issues, nil
	}

	userIDs := make([]string, len(issues))
	for n, i := range issues {
		userIDs[n] = i.UserID
	}
	users, err := e.owners(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	for _, i := range issues {
		i.User = users[i.UserID]
	}
	return issues, nil
}

// CountIssues returns the number of issues matching the filter.
func (e *Engine) CountIssues(ctx context.Context, filter *issue.ListFilter) (int64, error) {
	f := issue.ListFilter{}
	if filter != nil {
		f = *filter
	}
	f.OrgID = scopeFilter(ctx, f.OrgID)
	return e.store.CountIssues(ctx, &f)
}
