// Package memory provides an in-memory implementation of the Binspire
// composite store. It is intended for testing and development.
//
// Foreign keys and cascades follow the relational schema: audits, history
// and issues require an existing user and organization and are removed with
// either; an organization cannot be removed while users reference it.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/history"
	"github.com/xraph/binspire/issue"
	"github.com/xraph/binspire/organization"
	"github.com/xraph/binspire/store"
	"github.com/xraph/binspire/user"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is a thread-safe in-memory store for all Binspire entities.
type Store struct {
	mu sync.RWMutex

	organizations map[string]*organization.Organization
	users         map[string]*user.User
	audits        map[string]*audit.Audit
	histories     map[string]*history.History
	issues        map[string]*issue.Issue
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		organizations: make(map[string]*organization.Organization),
		users:         make(map[string]*user.User),
		audits:        make(map[string]*audit.Audit),
		histories:     make(map[string]*history.History),
		issues:        make(map[string]*issue.Issue),
	}
}

// Migrate is a no-op for the memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping is a no-op for the memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }

// ──────────────────────────────────────────────────
// Organization Store
// ──────────────────────────────────────────────────

func (s *Store) CreateOrganization(_ context.Context, o *organization.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.organizations[o.ID]; ok {
		return uniqueViolation("organization_pkey")
	}
	if err := s.checkOrganizationEmail(o.ID, o.Email); err != nil {
		return err
	}
	stampCreate(&o.CreatedAt, &o.UpdatedAt)
	s.organizations[o.ID] = copyOrganization(o)
	return nil
}

func (s *Store) GetOrganization(_ context.Context, orgID string) (*organization.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.organizations[orgID]
	if !ok {
		return nil, fmt.Errorf("organization %s: %w", orgID, store.ErrNotFound)
	}
	return copyOrganization(o), nil
}

func (s *Store) UpdateOrganization(_ context.Context, o *organization.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.organizations[o.ID]; !ok {
		return fmt.Errorf("organization %s: %w", o.ID, store.ErrNotFound)
	}
	if err := s.checkOrganizationEmail(o.ID, o.Email); err != nil {
		return err
	}
	s.organizations[o.ID] = copyOrganization(o)
	return nil
}

func (s *Store) DeleteOrganization(_ context.Context, orgID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.organizations[orgID]; !ok {
		return fmt.Errorf("organization %s: %w", orgID, store.ErrNotFound)
	}
	for _, u := range s.users {
		if u.OrgID == orgID {
			return fmt.Errorf("delete organization %s: referenced by user %s: %w",
				orgID, u.ID, fkViolation("user_org_id_organization_id_fk"))
		}
	}
	delete(s.organizations, orgID)
	deleteWhere(s.audits, func(a *audit.Audit) bool { return a.OrgID == orgID })
	deleteWhere(s.histories, func(h *history.History) bool { return h.OrgID == orgID })
	deleteWhere(s.issues, func(i *issue.Issue) bool { return i.OrgID == orgID })
	return nil
}

func (s *Store) ListOrganizations(_ context.Context, filter *organization.ListFilter) ([]*organization.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*organization.Organization, 0, len(s.organizations))
	for _, o := range s.organizations {
		result = append(result, copyOrganization(o))
	}
	var limit, offset int
	if filter != nil {
		limit, offset = filter.Limit, filter.Offset
	}
	return newestFirst(result, limit, offset, func(o *organization.Organization) (time.Time, string) {
		return o.CreatedAt, o.ID
	}), nil
}

func (s *Store) CountOrganizations(_ context.Context, _ *organization.ListFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.organizations)), nil
}

func (s *Store) checkOrganizationEmail(orgID, email string) error {
	for _, o := range s.organizations {
		if o.ID != orgID && o.Email == email {
			return uniqueViolation("organization_email_unique")
		}
	}
	return nil
}

// ──────────────────────────────────────────────────
// User Store
// ──────────────────────────────────────────────────

func (s *Store) CreateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return uniqueViolation("user_pkey")
	}
	if err := s.checkUser(u); err != nil {
		return err
	}
	stampCreate(&u.CreatedAt, &u.UpdatedAt)
	s.users[u.ID] = copyUser(u)
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, store.ErrNotFound)
	}
	return copyUser(u), nil
}

func (s *Store) UpdateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return fmt.Errorf("user %s: %w", u.ID, store.ErrNotFound)
	}
	if err := s.checkUser(u); err != nil {
		return err
	}
	s.users[u.ID] = copyUser(u)
	return nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("user %s: %w", userID, store.ErrNotFound)
	}
	delete(s.users, userID)
	deleteWhere(s.audits, func(a *audit.Audit) bool { return a.UserID == userID })
	deleteWhere(s.histories, func(h *history.History) bool { return h.UserID == userID })
	deleteWhere(s.issues, func(i *issue.Issue) bool { return i.UserID == userID })
	return nil
}

func (s *Store) ListUsers(_ context.Context, filter *user.ListFilter) ([]*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*user.User, 0, len(s.users))
	for _, u := range s.users {
		if matchUser(u, filter) {
			result = append(result, copyUser(u))
		}
	}
	var limit, offset int
	if filter != nil {
		limit, offset = filter.Limit, filter.Offset
	}
	return newestFirst(result, limit, offset, func(u *user.User) (time.Time, string) {
		return u.CreatedAt, u.ID
	}), nil
}

func (s *Store) CountUsers(_ context.Context, filter *user.ListFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, u := range s.users {
		if matchUser(u, filter) {
			n++
		}
	}
	return n, nil
}

func matchUser(u *user.User, filter *user.ListFilter) bool {
	return filter == nil || filter.OrgID == "" || u.OrgID == filter.OrgID
}

func (s *Store) checkUser(u *user.User) error {
	if _, ok := s.organizations[u.OrgID]; !ok {
		return fkViolation("user_org_id_organization_id_fk")
	}
	for _, other := range s.users {
		if other.ID != u.ID && other.Email == u.Email {
			return uniqueViolation("user_email_unique")
		}
	}
	return nil
}

// ──────────────────────────────────────────────────
// Audit Store
// ──────────────────────────────────────────────────

func (s *Store) CreateAudit(_ context.Context, a *audit.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.audits[a.ID]; ok {
		return uniqueViolation("audit_pkey")
	}
	if err := s.checkOwners("audit", a.UserID, a.OrgID); err != nil {
		return err
	}
	if a.Changes == nil {
		a.Changes = audit.DefaultChanges()
	}
	stampCreate(&a.CreatedAt, &a.UpdatedAt)
	s.audits[a.ID] = copyAudit(a)
	return nil
}

func (s *Store) GetAudit(_ context.Context, auditID string) (*audit.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.audits[auditID]
	if !ok {
		return nil, fmt.Errorf("audit %s: %w", auditID, store.ErrNotFound)
	}
	return copyAudit(a), nil
}

func (s *Store) UpdateAudit(_ context.Context, a *audit.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.audits[a.ID]; !ok {
		return fmt.Errorf("audit %s: %w", a.ID, store.ErrNotFound)
	}
	if err := s.checkOwners("audit", a.UserID, a.OrgID); err != nil {
		return err
	}
	s.audits[a.ID] = copyAudit(a)
	return nil
}

func (s *Store) DeleteAudit(_ context.Context, auditID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.audits[auditID]; !ok {
		return fmt.Errorf("audit %s: %w", auditID, store.ErrNotFound)
	}
	delete(s.audits, auditID)
	return nil
}

func (s *Store) ListAudits(_ context.Context, filter *audit.ListFilter) ([]*audit.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*audit.Audit, 0, len(s.audits))
	for _, a := range s.audits {
		if matchAudit(a, filter) {
			result = append(result, copyAudit(a))
		}
	}
	var limit, offset int
	if filter != nil {
		limit, offset = filter.Limit, filter.Offset
	}
	return newestFirst(result, limit, offset, func(a *audit.Audit) (time.Time, string) {
		return a.CreatedAt, a.ID
	}), nil
}

func (s *Store) CountAudits(_ context.Context, filter *audit.ListFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, a := range s.audits {
		if matchAudit(a, filter) {
			n++
		}
	}
	return n, nil
}

func matchAudit(a *audit.Audit, filter *audit.ListFilter) bool {
	if filter == nil {
		return true
	}
	if filter.OrgID != "" && a.OrgID != filter.OrgID {
		return false
	}
	if filter.UserID != "" && a.UserID != filter.UserID {
		return false
	}
	return true
}

// ──────────────────────────────────────────────────
// History Store
// ──────────────────────────────────────────────────

func (s *Store) CreateHistory(_ context.Context, h *history.History) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.histories[h.ID]; ok {
		return uniqueViolation("history_pkey")
	}
	if err := s.checkOwners("history", h.UserID, h.OrgID); err != nil {
		return err
	}
	stampCreate(&h.CreatedAt, &h.UpdatedAt)
	s.histories[h.ID] = copyHistory(h)
	return nil
}

func (s *Store) GetHistory(_ context.Context, historyID string) (*history.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.histories[historyID]
	if !ok {
		return nil, fmt.Errorf("history %s: %w", historyID, store.ErrNotFound)
	}
	return copyHistory(h), nil
}

func (s *Store) UpdateHistory(_ context.Context, h *history.History) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.histories[h.ID]; !ok {
		return fmt.Errorf("history %s: %w", h.ID, store.ErrNotFound)
	}
	if err := s.checkOwners("history", h.UserID, h.OrgID); err != nil {
		return err
	}
	s.histories[h.ID] = copyHistory(h)
	return nil
}

func (s *Store) DeleteHistory(_ context.Context, historyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.histories[historyID]; !ok {
		return fmt.Errorf("history %s: %w", historyID, store.ErrNotFound)
	}
	delete(s.histories, historyID)
	return nil
}

func (s *Store) ListHistories(_ context.Context, filter *history.ListFilter) ([]*history.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*history.History, 0, len(s.histories))
	for _, h := range s.histories {
		if matchHistory(h, filter) {
			result = append(result, copyHistory(h))
		}
	}
	var limit, offset int
	if filter != nil {
		limit, offset = filter.Limit, filter.Offset
	}
	return newestFirst(result, limit, offset, func(h *history.History) (time.Time, string) {
		return h.CreatedAt, h.ID
	}), nil
}

func (s *Store) CountHistories(_ context.Context, filter *history.ListFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, h := range s.histories {
		if matchHistory(h, filter) {
			n++
		}
	}
	return n, nil
}

func matchHistory(h *history.History, filter *history.ListFilter) bool {
	if filter == nil {
		return true
	}
	if filter.OrgID != "" && h.OrgID != filter.OrgID {
		return false
	}
	if filter.UserID != "" && h.UserID != filter.UserID {
		return false
	}
	return true
}

// ──────────────────────────────────────────────────
// Issue Store
// ──────────────────────────────────────────────────

func (s *Store) CreateIssue(_ context.Context, i *issue.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.issues[i.ID]; ok {
		return uniqueViolation("issues_pkey")
	}
	if err := s.checkOwners("issues", i.UserID, i.OrgID); err != nil {
		return err
	}
	if i.Priority == "" {
		i.Priority = issue.DefaultPriority
	}
	if i.Status == "" {
		i.Status = issue.DefaultStatus
	}
	stampCreate(&i.CreatedAt, &i.UpdatedAt)
	s.issues[i.ID] = copyIssue(i)
	return nil
}

func (s *Store) GetIssue(_ context.Context, issueID string) (*issue.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.issues[issueID]
	if !ok {
		return nil, fmt.Errorf("issue %s: %w", issueID, store.ErrNotFound)
	}
	return copyIssue(i), nil
}

func (s *Store) UpdateIssue(_ context.Context, i *issue.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.issues[i.ID]; !ok {
		return fmt.Errorf("issue %s: %w", i.ID, store.ErrNotFound)
	}
	if err := s.checkOwners("issues", i.UserID, i.OrgID); err != nil {
		return err
	}
	s.issues[i.ID] = copyIssue(i)
	return nil
}

func (s *Store) DeleteIssue(_ context.Context, issueID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.issues[issueID]; !ok {
		return fmt.Errorf("issue %s: %w", issueID, store.ErrNotFound)
	}
	delete(s.issues, issueID)
	return nil
}

func (s *Store) ListIssues(_ context.Context, filter *issue.ListFilter) ([]*issue.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*issue.Issue, 0, len(s.issues))
	for _, i := range s.issues {
		if matchIssue(i, filter) {
			result = append(result, copyIssue(i))
		}
	}
	var limit, offset int
	if filter != nil {
		limit, offset = filter.Limit, filter.Offset
	}
	return newestFirst(result, limit, offset, func(i *issue.Issue) (time.Time, string) {
		return i.CreatedAt, i.ID
	}), nil
}

func (s *Store) CountIssues(_ context.Context, filter *issue.ListFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, i := range s.issues {
		if matchIssue(i, filter) {
			n++
		}
	}
	return n, nil
}

func matchIssue(i *issue.Issue, filter *issue.ListFilter) bool {
	if filter == nil {
		return true
	}
	if filter.OrgID != "" && i.OrgID != filter.OrgID {
		return false
	}
	if filter.UserID != "" && i.UserID != filter.UserID {
		return false
	}
	if filter.Status != "" && i.Status != filter.Status {
		return false
	}
	return true
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// checkOwners enforces the user_id and org_id foreign keys shared by the
// audit, history and issues tables.
func (s *Store) checkOwners(table, userID, orgID string) error {
	if _, ok := s.users[userID]; !ok {
		return fkViolation(table + "_user_id_user_id_fk")
	}
	if _, ok := s.organizations[orgID]; !ok {
		return fkViolation(table + "_org_id_organization_id_fk")
	}
	return nil
}

func fkViolation(constraint string) error {
	return fmt.Errorf("violates foreign key constraint %q: %w", constraint, store.ErrConstraint)
}

func uniqueViolation(constraint string) error {
	return fmt.Errorf("duplicate key value violates unique constraint %q: %w", constraint, store.ErrConstraint)
}

// stampCreate fills zero timestamps the way the column defaults would.
func stampCreate(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}

func deleteWhere[V any](m map[string]V, match func(V) bool) {
	maps.DeleteFunc(m, func(_ string, v V) bool { return match(v) })
}

// newestFirst orders items by creation time descending, breaking ties by
// ID descending, then applies offset and limit (zero means unbounded).
func newestFirst[T any](items []T, limit, offset int, key func(T) (time.Time, string)) []T {
	slices.SortFunc(items, func(a, b T) int {
		at, aid := key(a)
		bt, bid := key(b)
		if c := bt.Compare(at); c != 0 {
			return c
		}
		return cmp.Compare(bid, aid)
	})
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func copyOrganization(o *organization.Organization) *organization.Organization {
	c := *o
	return &c
}

func copyUser(u *user.User) *user.User {
	c := *u
	if u.Image != nil {
		img := *u.Image
		c.Image = &img
	}
	return &c
}

func copyAudit(a *audit.Audit) *audit.Audit {
	c := *a
	c.Changes = maps.Clone(a.Changes)
	return &c
}

func copyHistory(h *history.History) *history.History {
	c := *h
	c.User = nil
	return &c
}

func copyIssue(i *issue.Issue) *issue.Issue {
	c := *i
	c.User = nil
	return &c
}
