package binspire

import (
	"context"
	"fmt"

	"github.com/xraph/binspire/history"
	"github.com/xraph/binspire/id"
)

// CreateHistory inserts a new history entry and returns the stored row.
func (e *Engine) CreateHistory(ctx context.Context, in *history.CreateInput) (*history.History, error) {
	h := in.History()
	if h.ID == "" {
		h.ID = id.NewHistoryID()
	}
	e.stamp(&h.CreatedAt, &h.UpdatedAt)

	if err := e.store.CreateHistory(ctx, h); err != nil {
		return nil, fmt.Errorf("binspire: create history: %w", err)
	}
	created, err := readBack(ctx, EntityHistory, h.ID, e.store.GetHistory)
	if err != nil {
		return nil, err
	}
	e.plugins.EmitEntityCreated(ctx, EntityHistory, created.ID, created)
	return created, nil
}

// GetHistory returns the history entry with the given ID, with its owning
// user loaded.
func (e *Engine) GetHistory(ctx context.Context, historyID string) (*history.History, error) {
	h, err := e.store.GetHistory(ctx, historyID)
	if err != nil {
		return nil, err
	}
	if e.config.eagerLoadUsers() {
		if h.User, err = e.owner(ctx, h.UserID); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// UpdateHistory applies the set fields of in to an existing history entry.
func (e *Engine) UpdateHistory(ctx context.Context, historyID string, in *history.UpdateInput) (*history.History, error) {
	h, err := e.store.GetHistory(ctx, historyID)
	if err != nil {
		return nil, err
	}
	h.UpdatedAt = e.timestamp()
	in.Apply(h)

	if err := e.store.UpdateHistory(ctx, h); err != nil {
		return nil, fmt.Errorf("binspire: update history: %w", err)
	}
	updated, err := reread(ctx, EntityHistory, h.ID, e.store.GetHistory)
	if err != nil {
		return nil, err
	}
	e.plugins.EmitEntityUpdated(ctx, EntityHistory, updated.ID, updated)
	return updated, nil
}

// DeleteHistory removes a history entry.
func (e *Engine) DeleteHistory(ctx context.Context, historyID string) error {
	if _, err := e.store.GetHistory(ctx, historyID); err != nil {
		return err
	}
	if err := e.store.DeleteHistory(ctx, historyID); err != nil {
		return fmt.Errorf("binspire: delete history: %w", err)
	}
	e.plugins.EmitEntityDeleted(ctx, EntityHistory, historyID)
	return nil
}

// ListHistories returns history entries, newest first, each with its owning
// user loaded.
func (e *Engine) ListHistories(ctx context.Context, filter *history.ListFilter) ([]*history.History, error) {
	f := history.ListFilter{}
	if filter != nil {
		f = *filter
	}
	f.OrgID = scopeFilter(ctx, f.OrgID)

	entries, err := e.store.ListHistories(ctx, &f)
	if err != nil {
		return nil, fmt.Errorf("binspire: list histories: %w", err)
	}
	if !e.config.eagerLoadUsers() {
		return entries, nil
	}

	userIDs := make([]string, len(entries))
	for i, h := range entries {
		userIDs[i] = h.UserID
	}
	users, err := e.owners(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	for _, h := range entries {
		h.User = users[h.UserID]
	}
	return entries, nil
}

// CountHistories returns the number of history entries matching the filter.
func (e *Engine) CountHistories(ctx context.Context, filter *history.ListFilter) (int64, error) {
	f := history.ListFilter{}
	if filter != nil {
		f = *filter
	}
	f.OrgID = scopeFilter(ctx, f.OrgID)
	return e.store.CountHistories(ctx, &f)
}
