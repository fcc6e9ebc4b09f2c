// Package storetest provides a conformance suite shared by every
// store.Store backend.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/enum"
	"github.com/xraph/binspire/history"
	"github.com/xraph/binspire/id"
	"github.com/xraph/binspire/issue"
	"github.com/xraph/binspire/organization"
	"github.com/xraph/binspire/store"
	"github.com/xraph/binspire/user"
)

// Factory returns an empty, migrated store.
type Factory func(t *testing.T) store.Store

// Run executes the conformance suite against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("OrganizationCRUD", func(t *testing.T) { testOrganizationCRUD(t, newStore(t)) })
	t.Run("UserCRUD", func(t *testing.T) { testUserCRUD(t, newStore(t)) })
	t.Run("AuditCRUD", func(t *testing.T) { testAuditCRUD(t, newStore(t)) })
	t.Run("HistoryCRUD", func(t *testing.T) { testHistoryCRUD(t, newStore(t)) })
	t.Run("IssueCRUD", func(t *testing.T) { testIssueCRUD(t, newStore(t)) })
	t.Run("ForeignKeys", func(t *testing.T) { testForeignKeys(t, newStore(t)) })
	t.Run("UserDeleteCascades", func(t *testing.T) { testUserDeleteCascades(t, newStore(t)) })
	t.Run("OrganizationDeleteRestricted", func(t *testing.T) { testOrganizationDeleteRestricted(t, newStore(t)) })
	t.Run("NewestFirstPagination", func(t *testing.T) { testNewestFirstPagination(t, newStore(t)) })
}

// base is a fixed, microsecond-aligned instant so timestamps survive a
// round trip through every backend unchanged.
var base = time.Date(2025, 3, 14, 9, 26, 53, 589000, time.UTC)

// Seed creates one organization and one user in it.
func Seed(t *testing.T, s store.Store) (*organization.Organization, *user.User) {
	t.Helper()
	ctx := context.Background()
	o := &organization.Organization{
		ID:        id.NewOrganizationID(),
		Name:      "Binspire",
		Email:     id.NewOrganizationID() + "@example.com",
		Slug:      "binspire",
		CreatedAt: base,
		UpdatedAt: base,
	}
	if err := s.CreateOrganization(ctx, o); err != nil {
		t.Fatalf("seed organization: %v", err)
	}
	u := &user.User{
		ID:        id.NewUserID(),
		OrgID:     o.ID,
		Name:      "Ada",
		Email:     id.NewUserID() + "@example.com",
		CreatedAt: base,
		UpdatedAt: base,
	}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return o, u
}

func testOrganizationCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()
	o, _ := Seed(t, s)

	got, err := s.GetOrganization(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Binspire" || got.Slug != "binspire" {
		t.Fatalf("unexpected organization %+v", got)
	}
	if !got.CreatedAt.Equal(base) {
		t.Fatalf("expected created_at %v, got %v", base, got.CreatedAt)
	}

	o.Name = "Binspire Ltd"
	o.UpdatedAt = base.Add(time.Hour)
	if err := s.UpdateOrganization(ctx, o); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetOrganization(ctx, o.ID)
	if got.Name != "Binspire Ltd" {
		t.Fatal("update failed")
	}
	if !got.UpdatedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("expected updated_at to move, got %v", got.UpdatedAt)
	}

	count, err := s.CountOrganizations(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 organization, got %d", count)
	}

	missing := &organization.Organization{ID: "org_missing", Name: "x", Email: "x@example.com", Slug: "x"}
	if err := s.UpdateOrganization(ctx, missing); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update of missing row, got %v", err)
	}
}

func testUserCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()
	o, u := Seed(t, s)

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.OrgID != o.ID || got.Image != nil || got.EmailVerified {
		t.Fatalf("unexpected user %+v", got)
	}

	img := "https://example.com/ada.png"
	u.Image = &img
	u.EmailVerified = true
	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetUser(ctx, u.ID)
	if got.Image == nil || *got.Image != img || !got.EmailVerified {
		t.Fatalf("update failed: %+v", got)
	}

	list, err := s.ListUsers(ctx, &user.ListFilter{OrgID: o.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 user, got %d", len(list))
	}

	dup := &user.User{ID: id.NewUserID(), OrgID: o.ID, Name: "Dup", Email: u.Email}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, store.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for duplicate email, got %v", err)
	}
}

func testAuditCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()
	o, u := Seed(t, s)

	a := &audit.Audit{
		ID:        id.NewAuditID(),
		UserID:    u.ID,
		OrgID:     o.ID,
		Title:     "signed in",
		Entity:    enum.EntityAuthentication,
		Action:    enum.ActionLogin,
		CreatedAt: base,
		UpdatedAt: base,
	}
	if err := s.CreateAudit(ctx, a); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetAudit(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "signed in" || got.Entity != enum.EntityAuthentication || got.Action != enum.ActionLogin {
		t.Fatalf("unexpected audit %+v", got)
	}
	if len(got.Changes) != 2 {
		t.Fatalf("expected default changes, got %v", got.Changes)
	}
	if v, ok := got.Changes["before"]; !ok || v != nil {
		t.Fatalf("expected before=null, got %v", got.Changes)
	}

	a.Changes = map[string]any{"before": "a", "after": "b"}
	a.Action = enum.ActionUpdate
	if err := s.UpdateAudit(ctx, a); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetAudit(ctx, a.ID)
	if got.Action != enum.ActionUpdate || got.Changes["after"] != "b" {
		t.Fatalf("update failed: %+v", got)
	}

	count, _ := s.CountAudits(ctx, &audit.ListFilter{OrgID: o.ID})
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	if err := s.DeleteAudit(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetAudit(ctx, a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func testHistoryCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()
	o, u := Seed(t, s)

	h := &history.History{
		ID:        id.NewHistoryID(),
		Title:     "bin emptied",
		Entity:    enum.EntityTrashbinManagement,
		OrgID:     o.ID,
		UserID:    u.ID,
		CreatedAt: base,
		UpdatedAt: base,
	}
	if err := s.CreateHistory(ctx, h); err != nil {
		t.Fatal(err)
	}

	h.Title = "bin emptied twice"
	if err := s.UpdateHistory(ctx, h); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetHistory(ctx, h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "bin emptied twice" || got.User != nil {
		t.Fatalf("unexpected history %+v", got)
	}

	list, _ := s.ListHistories(ctx, &history.ListFilter{UserID: u.ID})
	if len(list) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(list))
	}

	if err := s.DeleteHistory(ctx, h.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetHistory(ctx, h.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func testIssueCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()
	o, u := Seed(t, s)

	i := &issue.Issue{
		ID:          id.NewIssueID(),
		UserID:      u.ID,
		Title:       "bin lid stuck",
		Description: "the lid of bin 4 does not open",
		Entity:      enum.EntityTrashbinManagement,
		Priority:    issue.DefaultPriority,
		Status:      issue.DefaultStatus,
		OrgID:       o.ID,
		CreatedAt:   base,
		UpdatedAt:   base,
	}
	if err := s.CreateIssue(ctx, i); err != nil {
		t.Fatal(err)
	}

	i.Status = enum.StatusResolved
	if err := s.UpdateIssue(ctx, i); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetIssue(ctx, i.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != enum.StatusResolved || got.Priority != enum.PriorityMedium {
		t.Fatalf("unexpected issue %+v", got)
	}

	open, _ := s.CountIssues(ctx, &issue.ListFilter{Status: enum.StatusOpen})
	if open != 0 {
		t.Fatalf("expected no open issues, got %d", open)
	}

	if err := s.DeleteIssue(ctx, i.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetIssue(ctx, i.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func testForeignKeys(t *testing.T, s store.Store) {
	ctx := context.Background()
	o, _ := Seed(t, s)

	a := &audit.Audit{
		ID:     id.NewAuditID(),
		UserID: "user_missing",
		OrgID:  o.ID,
		Title:  "orphan",
		Entity: enum.EntityAuthentication,
		Action: enum.ActionLogin,
	}
	if err := s.CreateAudit(ctx, a); !errors.Is(err, store.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for unknown user, got %v", err)
	}

	u := &user.User{ID: id.NewUserID(), OrgID: "org_missing", Name: "x", Email: "x@example.com"}
	if err := s.CreateUser(ctx, u); !errors.Is(err, store.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for unknown organization, got %v", err)
	}
}

func testUserDeleteCascades(t *testing.T, s store.Store) {
	ctx := context.Background()
	o, u := Seed(t, s)
	seedChildren(t, s, o.ID, u.ID)

	if err := s.DeleteUser(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	assertNoChildren(t, s, o.ID)
	if _, err := s.GetOrganization(ctx, o.ID); err != nil {
		t.Fatalf("organization should survive user delete: %v", err)
	}
}

func testOrganizationDeleteRestricted(t *testing.T, s store.Store) {
	ctx := context.Background()
	o, u := Seed(t, s)
	seedChildren(t, s, o.ID, u.ID)

	if err := s.DeleteOrganization(ctx, o.ID); !errors.Is(err, store.ErrConstraint) {
		t.Fatalf("expected ErrConstraint while users reference the organization, got %v", err)
	}
	if _, err := s.GetUser(ctx, u.ID); err != nil {
		t.Fatalf("user must not be cascaded: %v", err)
	}

	// Once the users are gone the organization delete cascades to the rest.
	if err := s.DeleteUser(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteOrganization(ctx, o.ID); err != nil {
		t.Fatal(err)
	}
	assertNoChildren(t, s, o.ID)
	if err := s.DeleteOrganization(ctx, o.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func testNewestFirstPagination(t *testing.T, s store.Store) {
	ctx := context.Background()
	o, u := Seed(t, s)

	ids := make([]string, 5)
	for n := range ids {
		h := &history.History{
			ID:        id.NewHistoryID(),
			Title:     "entry",
			Entity:    enum.EntityHistoryManagement,
			OrgID:     o.ID,
			UserID:    u.ID,
			CreatedAt: base.Add(time.Duration(n) * time.Minute),
			UpdatedAt: base,
		}
		if err := s.CreateHistory(ctx, h); err != nil {
			t.Fatal(err)
		}
		ids[n] = h.ID
	}

	all, err := s.ListHistories(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(all))
	}
	for n, h := range all {
		if want := ids[len(ids)-1-n]; h.ID != want {
			t.Fatalf("position %d: expected %s, got %s", n, want, h.ID)
		}
	}

	seen := make(map[string]bool)
	for offset := range 5 {
		page, err := s.ListHistories(ctx, &history.ListFilter{Limit: 1, Offset: offset})
		if err != nil {
			t.Fatal(err)
		}
		if len(page) != 1 {
			t.Fatalf("offset %d: expected 1 entry, got %d", offset, len(page))
		}
		if seen[page[0].ID] {
			t.Fatalf("offset %d: page overlaps an earlier page", offset)
		}
		if page[0].ID != all[offset].ID {
			t.Fatalf("offset %d: expected %s, got %s", offset, all[offset].ID, page[0].ID)
		}
		seen[page[0].ID] = true
	}

	tail, _ := s.ListHistories(ctx, &history.ListFilter{Limit: 10, Offset: 10})
	if len(tail) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(tail))
	}
}

func seedChildren(t *testing.T, s store.Store, orgID, userID string) {
	t.Helper()
	ctx := context.Background()
	if err := s.CreateAudit(ctx, &audit.Audit{
		ID: id.NewAuditID(), UserID: userID, OrgID: orgID, Title: "a",
		Entity: enum.EntityAuthentication, Action: enum.ActionLogin,
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateHistory(ctx, &history.History{
		ID: id.NewHistoryID(), UserID: userID, OrgID: orgID, Title: "h",
		Entity: enum.EntityHistoryManagement,
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateIssue(ctx, &issue.Issue{
		ID: id.NewIssueID(), UserID: userID, OrgID: orgID, Title: "i", Description: "d",
		Entity: enum.EntityIssueManagement, Priority: enum.PriorityHigh, Status: enum.StatusOpen,
	}); err != nil {
		t.Fatal(err)
	}
}

func assertNoChildren(t *testing.T, s store.Store, orgID string) {
	t.Helper()
	ctx := context.Background()
	if n, _ := s.CountAudits(ctx, &audit.ListFilter{OrgID: orgID}); n != 0 {
		t.Fatalf("expected audits to be cascaded, %d left", n)
	}
	if n, _ := s.CountHistories(ctx, &history.ListFilter{OrgID: orgID}); n != 0 {
		t.Fatalf("expected history to be cascaded, %d left", n)
	}
	if n, _ := s.CountIssues(ctx, &issue.ListFilter{OrgID: orgID}); n != 0 {
		t.Fatalf("expected issues to be cascaded, %d left", n)
	}
}
