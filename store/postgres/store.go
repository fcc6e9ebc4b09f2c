// Package postgres provides a PostgreSQL implementation of the Binspire
// composite store using grove ORM with Go-based migrations.
//
// Foreign keys, cascades and column defaults are enforced by the schema
// in migrations.go; constraint violations surface as store.ErrConstraint.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	_ "github.com/xraph/grove/drivers/pgdriver/pgmigrate" // registers the migration executor
	"github.com/xraph/grove/migrate"

	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/history"
	"github.com/xraph/binspire/issue"
	"github.com/xraph/binspire/organization"
	"github.com/xraph/binspire/store"
	"github.com/xraph/binspire/user"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// newestFirst is the list ordering shared by every table.
const newestFirst = "created_at DESC, id DESC"

// Store is a PostgreSQL implementation of the composite Binspire store.
type Store struct {
	db   *grove.DB
	pgdb *pgdriver.PgDB
}

// New creates a new PostgreSQL store.
func New(db *grove.DB) *Store {
	return &Store{
		db:   db,
		pgdb: pgdriver.Unwrap(db),
	}
}

// Migrate runs programmatic migrations via the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pgdb)
	if err != nil {
		return fmt.Errorf("binspire: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("binspire: migration failed: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Truncate removes every row. Users go first so the organization delete
// does not trip the restricting foreign key; the rest cascade.
func (s *Store) Truncate(ctx context.Context) error {
	if _, err := s.pgdb.NewDelete((*userModel)(nil)).Where("TRUE").Exec(ctx); err != nil {
		return fmt.Errorf("binspire: truncate users: %w", err)
	}
	if _, err := s.pgdb.NewDelete((*organizationModel)(nil)).Where("TRUE").Exec(ctx); err != nil {
		return fmt.Errorf("binspire: truncate organizations: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Organization operations
// ──────────────────────────────────────────────────

func (s *Store) CreateOrganization(ctx context.Context, o *organization.Organization) error {
	stampCreate(&o.CreatedAt, &o.UpdatedAt)
	_, err := s.pgdb.NewInsert(organizationToModel(o)).Exec(ctx)
	if err != nil {
		return classify("create organization", err)
	}
	return nil
}

func (s *Store) GetOrganization(ctx context.Context, orgID string) (*organization.Organization, error) {
	m := new(organizationModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", orgID).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("organization %s: %w", orgID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("binspire: get organization: %w", err)
	}
	return organizationFromModel(m), nil
}

func (s *Store) UpdateOrganization(ctx context.Context, o *organization.Organization) error {
	res, err := s.pgdb.NewUpdate(organizationToModel(o)).WherePK().Exec(ctx)
	if err != nil {
		return classify("update organization", err)
	}
	return affected(res, "organization", o.ID)
}

func (s *Store) DeleteOrganization(ctx context.Context, orgID string) error {
	res, err := s.pgdb.NewDelete((*organizationModel)(nil)).
		Where("id = ?", orgID).Exec(ctx)
	if err != nil {
		return classify("delete organization", err)
	}
	return affected(res, "organization", orgID)
}

func (s *Store) ListOrganizations(ctx context.Context, filter *organization.ListFilter) ([]*organization.Organization, error) {
	var models []organizationModel
	q := s.pgdb.NewSelect(&models).OrderExpr(newestFirst)
	if filter != nil {
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("binspire: list organizations: %w", err)
	}
	result := make([]*organization.Organization, len(models))
	for i := range models {
		result[i] = organizationFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountOrganizations(ctx context.Context, _ *organization.ListFilter) (int64, error) {
	count, err := s.pgdb.NewSelect((*organizationModel)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("binspire: count organizations: %w", err)
	}
	return count, nil
}

// ──────────────────────────────────────────────────
// User operations
// ──────────────────────────────────────────────────

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	stampCreate(&u.CreatedAt, &u.UpdatedAt)
	_, err := s.pgdb.NewInsert(userToModel(u)).Exec(ctx)
	if err != nil {
		return classify("create user", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (*user.User, error) {
	m := new(userModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("user %s: %w", userID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("binspire: get user: %w", err)
	}
	return userFromModel(m), nil
}

func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	res, err := s.pgdb.NewUpdate(userToModel(u)).WherePK().Exec(ctx)
	if err != nil {
		return classify("update user", err)
	}
	return affected(res, "user", u.ID)
}

func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	res, err := s.pgdb.NewDelete((*userModel)(nil)).
		Where("id = ?", userID).Exec(ctx)
	if err != nil {
		return classify("delete user", err)
	}
	return affected(res, "user", userID)
}

func (s *Store) ListUsers(ctx context.Context, filter *user.ListFilter) ([]*user.User, error) {
	var models []userModel
	q := s.pgdb.NewSelect(&models).OrderExpr(newestFirst)
	if filter != nil {
		if filter.OrgID != "" {
			q = q.Where("org_id = ?", filter.OrgID)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("binspire: list users: %w", err)
	}
	result := make([]*user.User, len(models))
	for i := range models {
		result[i] = userFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountUsers(ctx context.Context, filter *user.ListFilter) (int64, error) {
	q := s.pgdb.NewSelect((*userModel)(nil))
	if filter != nil && filter.OrgID != "" {
		q = q.Where("org_id = ?", filter.OrgID)
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("binspire: count users: %w", err)
	}
	return count, nil
}

// ──────────────────────────────────────────────────
// Audit operations
// ──────────────────────────────────────────────────

func (s *Store) CreateAudit(ctx context.Context, a *audit.Audit) error {
	stampCreate(&a.CreatedAt, &a.UpdatedAt)
	if a.Changes == nil {
		a.Changes = audit.DefaultChanges()
	}
	_, err := s.pgdb.NewInsert(auditToModel(a)).Exec(ctx)
	if err != nil {
		return classify("create audit", err)
	}
	return nil
}

func (s *Store) GetAudit(ctx context.Context, auditID string) (*audit.Audit, error) {
	m := new(auditModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", auditID).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("audit %s: %w", auditID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("binspire: get audit: %w", err)
	}
	return auditFromModel(m), nil
}

func (s *Store) UpdateAudit(ctx context.Context, a *audit.Audit) error {
	res, err := s.pgdb.NewUpdate(auditToModel(a)).WherePK().Exec(ctx)
	if err != nil {
		return classify("update audit", err)
	}
	return affected(res, "audit", a.ID)
}

func (s *Store) DeleteAudit(ctx context.Context, auditID string) error {
	res, err := s.pgdb.NewDelete((*auditModel)(nil)).
		Where("id = ?", auditID).Exec(ctx)
	if err != nil {
		return classify("delete audit", err)
	}
	return affected(res, "audit", auditID)
}

func (s *Store) ListAudits(ctx context.Context, filter *audit.ListFilter) ([]*audit.Audit, error) {
	var models []auditModel
	q := s.pgdb.NewSelect(&models).OrderExpr(newestFirst)
	if filter != nil {
		if filter.OrgID != "" {
			q = q.Where("org_id = ?", filter.OrgID)
		}
		if filter.UserID != "" {
			q = q.Where("user_id = ?", filter.UserID)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("binspire: list audits: %w", err)
	}
	result := make([]*audit.Audit, len(models))
	for i := range models {
		result[i] = auditFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountAudits(ctx context.Context, filter *audit.ListFilter) (int64, error) {
	q := s.pgdb.NewSelect((*auditModel)(nil))
	if filter != nil {
		if filter.OrgID != "" {
			q = q.Where("org_id = ?", filter.OrgID)
		}
		if filter.UserID != "" {
			q = q.Where("user_id = ?", filter.UserID)
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("binspire: count audits: %w", err)
	}
	return count, nil
}

// ──────────────────────────────────────────────────
// History operations
// ──────────────────────────────────────────────────

func (s *Store) CreateHistory(ctx context.Context, h *history.History) error {
	stampCreate(&h.CreatedAt, &h.UpdatedAt)
	_, err := s.pgdb.NewInsert(historyToModel(h)).Exec(ctx)
	if err != nil {
		return classify("create history", err)
	}
	return nil
}

func (s *Store) GetHistory(ctx context.Context, historyID string) (*history.History, error) {
	m := new(historyModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", historyID).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("history %s: %w", historyID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("binspire: get history: %w", err)
	}
	return historyFromModel(m), nil
}

func (s *Store) UpdateHistory(ctx context.Context, h *history.History) error {
	res, err := s.pgdb.NewUpdate(historyToModel(h)).WherePK().Exec(ctx)
	if err != nil {
		return classify("update history", err)
	}
	return affected(res, "history", h.ID)
}

func (s *Store) DeleteHistory(ctx context.Context, historyID string) error {
	res, err := s.pgdb.NewDelete((*historyModel)(nil)).
		Where("id = ?", historyID).Exec(ctx)
	if err != nil {
		return classify("delete history", err)
	}
	return affected(res, "history", historyID)
}

func (s *Store) ListHistories(ctx context.Context, filter *history.ListFilter) ([]*history.History, error) {
	var models []historyModel
	q := s.pgdb.NewSelect(&models).OrderExpr(newestFirst)
	if filter != nil {
		if filter.OrgID != "" {
			q = q.Where("org_id = ?", filter.OrgID)
		}
		if filter.UserID != "" {
			q = q.Where("user_id = ?", filter.UserID)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("binspire: list histories: %w", err)
	}
	result := make([]*history.History, len(models))
	for i := range models {
		result[i] = historyFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountHistories(ctx context.Context, filter *history.ListFilter) (int64, error) {
	q := s.pgdb.NewSelect((*historyModel)(nil))
	if filter != nil {
		if filter.OrgID != "" {
			q = q.Where("org_id = ?", filter.OrgID)
		}
		if filter.UserID != "" {
			q = q.Where("user_id = ?", filter.UserID)
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("binspire: count histories: %w", err)
	}
	return count, nil
}

// ──────────────────────────────────────────────────
// Issue operations
// ──────────────────────────────────────────────────

func (s *Store) CreateIssue(ctx context.Context, i *issue.Issue) error {
	stampCreate(&i.CreatedAt, &i.UpdatedAt)
	if i.Priority == "" {
		i.Priority = issue.DefaultPriority
	}
	if i.Status == "" {
		i.Status = issue.DefaultStatus
	}
	_, err := s.pgdb.NewInsert(issueToModel(i)).Exec(ctx)
	if err != nil {
		return classify("create issue", err)
	}
	return nil
}

func (s *Store) GetIssue(ctx context.Context, issueID string) (*issue.Issue, error) {
	m := new(issueModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", issueID).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("issue %s: %w", issueID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("binspire: get issue: %w", err)
	}
	return issueFromModel(m), nil
}

func (s *Store) UpdateIssue(ctx context.Context, i *issue.Issue) error {
	res, err := s.pgdb.NewUpdate(issueToModel(i)).WherePK().Exec(ctx)
	if err != nil {
		return classify("update issue", err)
	}
	return affected(res, "issue", i.ID)
}

func (s *Store) DeleteIssue(ctx context.Context, issueID string) error {
	res, err := s.pgdb.NewDelete((*issueModel)(nil)).
		Where("id = ?", issueID).Exec(ctx)
	if err != nil {
		return classify("delete issue", err)
	}
	return affected(res, "issue", issueID)
}

func (s *Store) ListIssues(ctx context.Context, filter *issue.ListFilter) ([]*issue.Issue, error) {
	var models []issueModel
	q := s.pgdb.NewSelect(&models).OrderExpr(newestFirst)
	if filter != nil {
		if filter.OrgID != "" {
			q = q.Where("org_id = ?", filter.OrgID)
		}
		if filter.UserID != "" {
			q = q.Where("user_id = ?", filter.UserID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", string(filter.Status))
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("binspire: list issues: %w", err)
	}
	result := make([]*issue.Issue, len(models))
	for i := range models {
		result[i] = issueFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountIssues(ctx context.Context, filter *issue.ListFilter) (int64, error) {
	q := s.pgdb.NewSelect((*issueModel)(nil))
	if filter != nil {
		if filter.OrgID != "" {
			q = q.Where("org_id = ?", filter.OrgID)
		}
		if filter.UserID != "" {
			q = q.Where("user_id = ?", filter.UserID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", string(filter.Status))
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("binspire: count issues: %w", err)
	}
	return count, nil
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// classify maps foreign key (23503) and unique (23505) violations to
// store.ErrConstraint and wraps everything else.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "23503" || pgErr.Code == "23505") {
		return fmt.Errorf("binspire: %s: %s: %w", op, pgErr.Message, store.ErrConstraint)
	}
	return fmt.Errorf("binspire: %s: %w", op, err)
}

// execResult is the part of a grove exec result affected needs.
type execResult interface {
	RowsAffected() (int64, error)
}

// affected reports store.ErrNotFound when a write touched no rows.
func affected(res execResult, entity, entityID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("binspire: %s rows affected: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, entityID, store.ErrNotFound)
	}
	return nil
}

// stampCreate fills zero timestamps before insert.
func stampCreate(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}
