package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/enum"
	"github.com/xraph/binspire/id"
	"github.com/xraph/binspire/issue"
	"github.com/xraph/binspire/store"
	"github.com/xraph/binspire/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(_ *testing.T) store.Store { return New() })
}

func TestCreateStampsZeroTimestamps(t *testing.T) {
	ctx := context.Background()
	s := New()
	o, u := storetest.Seed(t, s)

	i := &issue.Issue{
		ID:          id.NewIssueID(),
		UserID:      u.ID,
		OrgID:       o.ID,
		Title:       "overflow",
		Description: "bin 7 is overflowing",
		Entity:      enum.EntityTrashbinManagement,
	}
	if err := s.CreateIssue(ctx, i); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetIssue(ctx, i.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be stamped")
	}
	if got.Priority != issue.DefaultPriority || got.Status != issue.DefaultStatus {
		t.Fatalf("expected column defaults, got %s/%s", got.Priority, got.Status)
	}
}

func TestReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	o, u := storetest.Seed(t, s)

	a := &audit.Audit{
		ID:      id.NewAuditID(),
		UserID:  u.ID,
		OrgID:   o.ID,
		Title:   "rename",
		Entity:  enum.EntityUserManagement,
		Action:  enum.ActionUpdate,
		Changes: map[string]any{"before": "x", "after": "y"},
	}
	if err := s.CreateAudit(ctx, a); err != nil {
		t.Fatal(err)
	}

	a.Changes["after"] = "mutated"
	got, _ := s.GetAudit(ctx, a.ID)
	if got.Changes["after"] != "y" {
		t.Fatal("store shares the caller's changes map")
	}

	got.Title = "mutated"
	again, _ := s.GetAudit(ctx, a.ID)
	if again.Title != "rename" {
		t.Fatal("store returned its internal pointer")
	}
}

func TestDuplicatePrimaryKey(t *testing.T) {
	ctx := context.Background()
	s := New()
	o, _ := storetest.Seed(t, s)

	dup := *o
	dup.Email = "other@example.com"
	if err := s.CreateOrganization(ctx, &dup); !errors.Is(err, store.ErrConstraint) {
		t.Fatalf("expected ErrConstraint, got %v", err)
	}
}

func TestDeleteMissing(t *testing.T) {
	ctx := context.Background()
	s := New()

	for name, del := range map[string]func(context.Context, string) error{
		"organization": s.DeleteOrganization,
		"user":         s.DeleteUser,
		"audit":        s.DeleteAudit,
		"history":      s.DeleteHistory,
		"issue":        s.DeleteIssue,
	} {
		if err := del(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}
