package binspire

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/enum"
	"github.com/xraph/binspire/history"
	"github.com/xraph/binspire/issue"
	"github.com/xraph/binspire/organization"
	"github.com/xraph/binspire/plugin"
	"github.com/xraph/binspire/store"
	"github.com/xraph/binspire/store/memory"
	"github.com/xraph/binspire/store/storetest"
	"github.com/xraph/binspire/user"
)

func ptr[T any](v T) *T { return &v }

var clock = time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

// countingStore records mutating calls and user lookups.
type countingStore struct {
	store.Store

	mu    sync.Mutex
	calls map[string]int
}

func newCountingStore(s store.Store) *countingStore {
	return &countingStore{Store: s, calls: make(map[string]int)}
}

func (c *countingStore) count(op string) {
	c.mu.Lock()
	c.calls[op]++
	c.mu.Unlock()
}

func (c *countingStore) n(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

func (c *countingStore) mutations() int {
	return c.n("create") + c.n("update") + c.n("delete")
}

func (c *countingStore) CreateAudit(ctx context.Context, a *audit.Audit) error {
	c.count("create")
	return c.Store.CreateAudit(ctx, a)
}

func (c *countingStore) UpdateAudit(ctx context.Context, a *audit.Audit) error {
	c.count("update")
	return c.Store.UpdateAudit(ctx, a)
}

func (c *countingStore) DeleteAudit(ctx context.Context, auditID string) error {
	c.count("delete")
	return c.Store.DeleteAudit(ctx, auditID)
}

func (c *countingStore) UpdateIssue(ctx context.Context, i *issue.Issue) error {
	c.count("update")
	return c.Store.UpdateIssue(ctx, i)
}

func (c *countingStore) DeleteIssue(ctx context.Context, issueID string) error {
	c.count("delete")
	return c.Store.DeleteIssue(ctx, issueID)
}

func (c *countingStore) GetUser(ctx context.Context, userID string) (*user.User, error) {
	c.count("getUser")
	return c.Store.GetUser(ctx, userID)
}

// vanishingStore accepts inserts but never finds the audit afterwards.
type vanishingStore struct {
	store.Store
}

func (vanishingStore) GetAudit(_ context.Context, auditID string) (*audit.Audit, error) {
	return nil, errors.Join(errors.New("audit "+auditID), store.ErrNotFound)
}

// racingStore finds rows but loses them before the write lands.
type racingStore struct {
	store.Store
}

func (racingStore) UpdateHistory(_ context.Context, h *history.History) error {
	return fmt.Errorf("history %s: %w", h.ID, store.ErrNotFound)
}

func (racingStore) DeleteAudit(_ context.Context, auditID string) error {
	return fmt.Errorf("audit %s: %w", auditID, store.ErrNotFound)
}

// secondsStore keeps audit update times at second precision.
type secondsStore struct {
	store.Store
}

func (s secondsStore) UpdateAudit(ctx context.Context, a *audit.Audit) error {
	cp := *a
	cp.UpdatedAt = cp.UpdatedAt.Truncate(time.Second)
	return s.Store.UpdateAudit(ctx, &cp)
}

// mapCache is a minimal Cache.
type mapCache struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func (m *mapCache) GetUser(_ context.Context, userID string) (*user.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	return u, ok
}

func (m *mapCache) SetUser(_ context.Context, u *user.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *mapCache) InvalidateUser(_ context.Context, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
}

// recorder captures entity lifecycle events.
type recorder struct {
	events []string
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) OnEntityCreated(_ context.Context, entity, id string, _ any) error {
	r.events = append(r.events, "created:"+entity+":"+id)
	return nil
}

func (r *recorder) OnEntityUpdated(_ context.Context, entity, id string, _ any) error {
	r.events = append(r.events, "updated:"+entity+":"+id)
	return nil
}

func (r *recorder) OnEntityDeleted(_ context.Context, entity, id string) error {
	r.events = append(r.events, "deleted:"+entity+":"+id)
	return nil
}

var _ plugin.EntityCreated = (*recorder)(nil)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *countingStore) {
	t.Helper()
	s := newCountingStore(memory.New())
	opts = append([]Option{WithStore(s), WithClock(func() time.Time { return clock })}, opts...)
	eng, err := NewEngine(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return eng, s
}

func auditInput(u *user.User) *audit.CreateInput {
	return &audit.CreateInput{
		UserID: ptr(u.ID),
		OrgID:  ptr(u.OrgID),
		Title:  ptr("signed in"),
		Entity: ptr(enum.EntityAuthentication),
		Action: ptr(enum.ActionLogin),
	}
}

func TestNewEngine_RequiresStore(t *testing.T) {
	_, err := NewEngine()
	if !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("expected ErrStoreRequired, got %v", err)
	}
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	_, u := storetest.Seed(t, s)

	a, err := eng.CreateAudit(ctx, auditInput(u))
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == "" {
		t.Fatal("expected generated ID")
	}
	if !a.CreatedAt.Equal(clock) || !a.UpdatedAt.Equal(clock) {
		t.Fatalf("expected timestamps %v, got %v / %v", clock, a.CreatedAt, a.UpdatedAt)
	}
	if !reflect.DeepEqual(a.Changes, audit.DefaultChanges()) {
		t.Fatalf("expected default changes, got %v", a.Changes)
	}

	got, err := eng.GetAudit(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, got) {
		t.Fatalf("round trip mismatch:\ncreated %+v\nfetched %+v", a, got)
	}
}

func TestCreateKeepsSuppliedValues(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	_, u := storetest.Seed(t, s)

	created := clock.Add(-time.Hour)
	in := auditInput(u)
	in.ID = ptr("audit_custom")
	in.CreatedAt = &created

	a, err := eng.CreateAudit(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != "audit_custom" {
		t.Fatalf("expected caller ID, got %q", a.ID)
	}
	if !a.CreatedAt.Equal(created) {
		t.Fatalf("expected createdAt %v, got %v", created, a.CreatedAt)
	}
	if !a.UpdatedAt.Equal(clock) {
		t.Fatalf("expected updatedAt %v, got %v", clock, a.UpdatedAt)
	}
}

func TestCreateFailedWhenRowVanishes(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	_, u := storetest.Seed(t, mem)
	eng, err := NewEngine(WithStore(vanishingStore{mem}))
	if err != nil {
		t.Fatal(err)
	}

	_, err = eng.CreateAudit(ctx, auditInput(u))
	if !errors.Is(err, ErrCreateFailed) {
		t.Fatalf("expected ErrCreateFailed, got %v", err)
	}
	if err.Error() != "failed to create audit" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCreateConstraintViolation(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)

	_, err := eng.CreateAudit(ctx, auditInput(&user.User{ID: "user_missing", OrgID: "org_missing"}))
	if !errors.Is(err, ErrConstraint) {
		t.Fatalf("expected ErrConstraint, got %v", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	_, u := storetest.Seed(t, s)

	in := auditInput(u)
	earlier := clock.Add(-time.Hour)
	in.CreatedAt, in.UpdatedAt = &earlier, &earlier
	a, err := eng.CreateAudit(ctx, in)
	if err != nil {
		t.Fatal(err)
	}

	updated, err := eng.UpdateAudit(ctx, a.ID, &audit.UpdateInput{Title: ptr("signed out")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "signed out" {
		t.Fatalf("expected new title, got %q", updated.Title)
	}
	if !updated.UpdatedAt.Equal(clock) {
		t.Fatalf("expected updatedAt refreshed to %v, got %v", clock, updated.UpdatedAt)
	}

	got, err := eng.GetAudit(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := *a
	want.Title = "signed out"
	want.UpdatedAt = clock
	if !reflect.DeepEqual(&want, got) {
		t.Fatalf("unspecified fields changed:\nwant %+v\ngot  %+v", &want, got)
	}
}

func TestUpdateSuppliedUpdatedAtWins(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	_, u := storetest.Seed(t, s)

	a, err := eng.CreateAudit(ctx, auditInput(u))
	if err != nil {
		t.Fatal(err)
	}
	supplied := clock.Add(time.Hour)
	updated, err := eng.UpdateAudit(ctx, a.ID, &audit.UpdateInput{UpdatedAt: &supplied})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.UpdatedAt.Equal(supplied) {
		t.Fatalf("expected updatedAt %v, got %v", supplied, updated.UpdatedAt)
	}
}

func TestMissingRowsDoNotMutate(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)

	if _, err := eng.GetAudit(ctx, "audit_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := eng.UpdateAudit(ctx, "audit_missing", &audit.UpdateInput{Title: ptr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := eng.DeleteAudit(ctx, "audit_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
	if _, err := eng.UpdateIssue(ctx, "issue_missing", &issue.UpdateInput{Status: ptr(enum.StatusClosed)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update issue: expected ErrNotFound, got %v", err)
	}
	if err := eng.DeleteIssue(ctx, "issue_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete issue: expected ErrNotFound, got %v", err)
	}
	if n := s.mutations(); n != 0 {
		t.Fatalf("expected no store mutations, got %d", n)
	}
}

func TestDeleteThenGet(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	_, u := storetest.Seed(t, s)

	a, err := eng.CreateAudit(ctx, auditInput(u))
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.DeleteAudit(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.GetAudit(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestIssueDefaults(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	_, u := storetest.Seed(t, s)

	i, err := eng.CreateIssue(ctx, &issue.CreateInput{
		UserID:      ptr(u.ID),
		OrgID:       ptr(u.OrgID),
		Title:       ptr("lid broken"),
		Description: ptr("the lid of bin 4 does not close"),
		Entity:      ptr(enum.EntityTrashbinManagement),
	})
	if err != nil {
		t.Fatal(err)
	}
	if i.Priority != enum.PriorityMedium || i.Status != enum.StatusOpen {
		t.Fatalf("expected medium/open defaults, got %s/%s", i.Priority, i.Status)
	}
}

func TestEagerLoadsOwner(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	_, u := storetest.Seed(t, s)

	h, err := eng.CreateHistory(ctx, &history.CreateInput{
		Title:  ptr("bin emptied"),
		Entity: ptr(enum.EntityTrashbinManagement),
		OrgID:  ptr(u.OrgID),
		UserID: ptr(u.ID),
	})
	if err != nil {
		t.Fatal(err)
	}
	if h.User != nil {
		t.Fatal("create should not load the owner")
	}

	got, err := eng.GetHistory(ctx, h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.User == nil || got.User.ID != u.ID {
		t.Fatalf("expected owner %s, got %+v", u.ID, got.User)
	}

	list, err := eng.ListHistories(ctx, &history.ListFilter{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].User == nil || list[0].User.Name != u.Name {
		t.Fatalf("expected one entry with owner, got %+v", list)
	}
}

func TestEagerLoadDisabled(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t, WithConfig(Config{EagerLoadUsers: ptr(false)}))
	_, u := storetest.Seed(t, s)

	i, err := eng.CreateIssue(ctx, &issue.CreateInput{
		UserID:      ptr(u.ID),
		OrgID:       ptr(u.OrgID),
		Title:       ptr("t"),
		Description: ptr("d"),
		Entity:      ptr(enum.EntityIssueManagement),
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := eng.GetIssue(ctx, i.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.User != nil {
		t.Fatal("expected owner not to be loaded")
	}
	if s.n("getUser") != 0 {
		t.Fatalf("expected no user lookups, got %d", s.n("getUser"))
	}
}

func TestOwnerCache(t *testing.T) {
	ctx := context.Background()
	c := &mapCache{users: make(map[string]*user.User)}
	eng, s := newTestEngine(t, WithCache(c))
	_, u := storetest.Seed(t, s)

	for range 3 {
		if _, err := eng.CreateIssue(ctx, &issue.CreateInput{
			UserID:      ptr(u.ID),
			OrgID:       ptr(u.OrgID),
			Title:       ptr("t"),
			Description: ptr("d"),
			Entity:      ptr(enum.EntityIssueManagement),
		}); err != nil {
			t.Fatal(err)
		}
	}

	before := s.n("getUser")
	if _, err := eng.ListIssues(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.ListIssues(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if got := s.n("getUser") - before; got != 1 {
		t.Fatalf("expected one user lookup across both lists, got %d", got)
	}

	if _, err := eng.UpdateUser(ctx, u.ID, &user.UpdateInput{Name: ptr("Grace")}); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.GetUser(ctx, u.ID); ok {
		t.Fatal("expected update to invalidate the cached user")
	}
	list, err := eng.ListIssues(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if list[0].User.Name != "Grace" {
		t.Fatalf("expected refreshed owner, got %q", list[0].User.Name)
	}
}

func TestPagination(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	_, u := storetest.Seed(t, s)

	var ids []string
	for n := range 4 {
		created := clock.Add(time.Duration(n) * time.Minute)
		h, err := eng.CreateHistory(ctx, &history.CreateInput{
			Title:     ptr("entry"),
			Entity:    ptr(enum.EntityHistoryManagement),
			OrgID:     ptr(u.OrgID),
			UserID:    ptr(u.ID),
			CreatedAt: &created,
		})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, h.ID)
	}

	// Newest first: ids[3], ids[2], ids[1], ids[0].
	seen := map[string]bool{}
	for offset := 1; offset <= 3; offset++ {
		page, err := eng.ListHistories(ctx, &history.ListFilter{Limit: 1, Offset: offset})
		if err != nil {
			t.Fatal(err)
		}
		if len(page) != 1 {
			t.Fatalf("offset %d: expected 1 row, got %d", offset, len(page))
		}
		if want := ids[3-offset]; page[0].ID != want {
			t.Fatalf("offset %d: expected %s, got %s", offset, want, page[0].ID)
		}
		if seen[page[0].ID] {
			t.Fatalf("offset %d: overlapping page", offset)
		}
		seen[page[0].ID] = true
	}
}

func TestOrganizationScope(t *testing.T) {
	eng, s := newTestEngine(t)
	_, u1 := storetest.Seed(t, s)
	_, u2 := storetest.Seed(t, s)
	ctx := context.Background()

	for _, u := range []*user.User{u1, u2} {
		if _, err := eng.CreateAudit(ctx, auditInput(u)); err != nil {
			t.Fatal(err)
		}
	}

	all, err := eng.ListAudits(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 audits unscoped, got %d", len(all))
	}

	scoped, err := eng.ListAudits(WithOrganization(ctx, u1.OrgID), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(scoped) != 1 || scoped[0].OrgID != u1.OrgID {
		t.Fatalf("expected only %s audits, got %+v", u1.OrgID, scoped)
	}

	n, err := eng.CountUsers(WithOrganization(ctx, u2.OrgID), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 scoped user, got %d", n)
	}
}

func TestOrganizationDeleteRestricted(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	o, u := storetest.Seed(t, s)

	if err := eng.DeleteOrganization(ctx, o.ID); !errors.Is(err, ErrConstraint) {
		t.Fatalf("expected ErrConstraint while users exist, got %v", err)
	}
	if err := eng.DeleteUser(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	if err := eng.DeleteOrganization(ctx, o.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.GetOrganization(ctx, o.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPluginEvents(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	eng, _ := newTestEngine(t, WithPlugin(rec))

	o, err := eng.CreateOrganization(ctx, &organization.CreateInput{
		Name:  ptr("Acme"),
		Email: ptr("ops@acme.test"),
		Slug:  ptr("acme"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.UpdateOrganization(ctx, o.ID, &organization.UpdateInput{Slug: ptr("acme-inc")}); err != nil {
		t.Fatal(err)
	}
	if err := eng.DeleteOrganization(ctx, o.ID); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"created:organization:" + o.ID,
		"updated:organization:" + o.ID,
		"deleted:organization:" + o.ID,
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Fatalf("expected events %v, got %v", want, rec.events)
	}
	if err := eng.Stop(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestStartPingsStore(t *testing.T) {
	eng, _ := newTestEngine(t)
	if err := eng.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestRowLostAfterLookupIsNotFound(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	_, u := storetest.Seed(t, mem)
	eng, err := NewEngine(WithStore(racingStore{mem}))
	if err != nil {
		t.Fatal(err)
	}

	h, err := eng.CreateHistory(ctx, &history.CreateInput{
		Title:  ptr("entry"),
		Entity: ptr(enum.EntityHistoryManagement),
		OrgID:  ptr(u.OrgID),
		UserID: ptr(u.ID),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.UpdateHistory(ctx, h.ID, &history.UpdateInput{Title: ptr("renamed")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}

	a, err := eng.CreateAudit(ctx, auditInput(u))
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.DeleteAudit(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateReturnsStoredRow(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	_, u := storetest.Seed(t, mem)
	eng, err := NewEngine(WithStore(secondsStore{mem}), WithClock(func() time.Time { return clock }))
	if err != nil {
		t.Fatal(err)
	}

	a, err := eng.CreateAudit(ctx, auditInput(u))
	if err != nil {
		t.Fatal(err)
	}
	updated, err := eng.UpdateAudit(ctx, a.ID, &audit.UpdateInput{Title: ptr("signed out")})
	if err != nil {
		t.Fatal(err)
	}
	if want := clock.Truncate(time.Second); !updated.UpdatedAt.Equal(want) {
		t.Fatalf("expected stored updatedAt %v, got %v", want, updated.UpdatedAt)
	}
	got, err := eng.GetAudit(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(updated, got) {
		t.Fatalf("update result differs from stored row:\nupdate %+v\nstored %+v", updated, got)
	}
}
