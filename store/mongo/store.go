// Package mongo provides a MongoDB implementation of the Binspire composite
// store using grove ORM.
//
// MongoDB has no foreign keys, so the store emulates the relational rules:
// writes check that the referenced user and organization exist, deleting a
// user or organization removes its audits, history and issues, and an
// organization cannot be deleted while users reference it. The emulation
// is not transactional.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/history"
	"github.com/xraph/binspire/issue"
	"github.com/xraph/binspire/organization"
	"github.com/xraph/binspire/store"
	"github.com/xraph/binspire/user"
)

// Collection name constants.
const (
	colOrganizations = "organization"
	colUsers         = "user"
	colAudits        = "audit"
	colHistories     = "history"
	colIssues        = "issues"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// newestFirst is the list ordering shared by every collection.
var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// Store is a MongoDB implementation of the composite Binspire store.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// Migrate creates indexes for all Binspire collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()
	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("binspire/mongo: migrate %s indexes: %w", col, err)
		}
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

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all Binspire collections.
func migrationIndexes() map[string][]mongod.IndexModel {
	byOwner := func() []mongod.IndexModel {
		return []mongod.IndexModel{
			{Keys: bson.D{{Key: "org_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: newestFirst},
		}
	}
	return map[string][]mongod.IndexModel{
		colOrganizations: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("organization_email_unique"),
			},
			{Keys: newestFirst},
		},
		colUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("user_email_unique"),
			},
			{Keys: bson.D{{Key: "org_id", Value: 1}}},
			{Keys: newestFirst},
		},
		colAudits:    byOwner(),
		colHistories: byOwner(),
		colIssues: append(byOwner(),
			mongod.IndexModel{Keys: bson.D{{Key: "org_id", Value: 1}, {Key: "status", Value: 1}}},
		),
	}
}

// ──────────────────────────────────────────────────
// Organization operations
// ──────────────────────────────────────────────────

func (s *Store) CreateOrganization(ctx context.Context, o *organization.Organization) error {
	stampCreate(&o.CreatedAt, &o.UpdatedAt)
	if _, err := s.mdb.NewInsert(organizationToModel(o)).Exec(ctx); err != nil {
		return classify("create organization", err)
	}
	return nil
}

func (s *Store) GetOrganization(ctx context.Context, orgID string) (*organization.Organization, error) {
	var m organizationModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": orgID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("organization %s: %w", orgID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("binspire/mongo: get organization: %w", err)
	}
	return organizationFromModel(&m), nil
}

func (s *Store) UpdateOrganization(ctx context.Context, o *organization.Organization) error {
	m := organizationToModel(o)
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return classify("update organization", err)
	}
	if res.MatchedCount() == 0 {
		return fmt.Errorf("organization %s: %w", o.ID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteOrganization(ctx context.Context, orgID string) error {
	if err := s.mustExist(ctx, (*organizationModel)(nil), "organization", orgID); err != nil {
		return err
	}
	users, err := s.count(ctx, (*userModel)(nil), bson.M{"org_id": orgID})
	if err != nil {
		return fmt.Errorf("binspire/mongo: delete organization: %w", err)
	}
	if users > 0 {
		return fmt.Errorf("binspire/mongo: delete organization %s: referenced by %d users: violates foreign key constraint %q: %w",
			orgID, users, "user_org_id_organization_id_fk", store.ErrConstraint)
	}
	if err := s.deleteOwned(ctx, bson.M{"org_id": orgID}); err != nil {
		return fmt.Errorf("binspire/mongo: delete organization: %w", err)
	}
	if _, err := s.mdb.NewDelete((*organizationModel)(nil)).
		Filter(bson.M{"_id": orgID}).
		Exec(ctx); err != nil {
		return fmt.Errorf("binspire/mongo: delete organization: %w", err)
	}
	return nil
}

func (s *Store) ListOrganizations(ctx context.Context, filter *organization.ListFilter) ([]*organization.Organization, error) {
	var models []organizationModel
	q := s.mdb.NewFind(&models).
		Filter(bson.M{}).
		Sort(newestFirst)
	if filter != nil {
		if filter.Limit > 0 {
			q = q.Limit(int64(filter.Limit))
		}
		if filter.Offset > 0 {
			q = q.Skip(int64(filter.Offset))
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("binspire/mongo: list organizations: %w", err)
	}
	result := make([]*organization.Organization, len(models))
	for i := range models {
		result[i] = organizationFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountOrganizations(ctx context.Context, _ *organization.ListFilter) (int64, error) {
	count, err := s.count(ctx, (*organizationModel)(nil), bson.M{})
	if err != nil {
		return 0, fmt.Errorf("binspire/mongo: count organizations: %w", err)
	}
	return count, nil
}

// ──────────────────────────────────────────────────
// User operations
// ──────────────────────────────────────────────────

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	if err := s.checkOrganization(ctx, "user", u.OrgID); err != nil {
		return err
	}
	stampCreate(&u.CreatedAt, &u.UpdatedAt)
	if _, err := s.mdb.NewInsert(userToModel(u)).Exec(ctx); err != nil {
		return classify("create user", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (*user.User, error) {
	var m userModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": userID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("user %s: %w", userID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("binspire/mongo: get user: %w", err)
	}
	return userFromModel(&m), nil
}

func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	if err := s.checkOrganization(ctx, "user", u.OrgID); err != nil {
		return err
	}
	m := userToModel(u)
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return classify("update user", err)
	}
	if res.MatchedCount() == 0 {
		return fmt.Errorf("user %s: %w", u.ID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	if err := s.mustExist(ctx, (*userModel)(nil), "user", userID); err != nil {
		return err
	}
	if err := s.deleteOwned(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("binspire/mongo: delete user: %w", err)
	}
	if _, err := s.mdb.NewDelete((*userModel)(nil)).
		Filter(bson.M{"_id": userID}).
		Exec(ctx); err != nil {
		return fmt.Errorf("binspire/mongo: delete user: %w", err)
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context, filter *user.ListFilter) ([]*user.User, error) {
	var models []userModel
	f := bson.M{}
	if filter != nil && filter.OrgID != "" {
		f["org_id"] = filter.OrgID
	}
	q := s.mdb.NewFind(&models).
		Filter(f).
		Sort(newestFirst)
	if filter != nil {
		if filter.Limit > 0 {
			q = q.Limit(int64(filter.Limit))
		}
		if filter.Offset > 0 {
			q = q.Skip(int64(filter.Offset))
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("binspire/mongo: list users: %w", err)
	}
	result := make([]*user.User, len(models))
	for i := range models {
		result[i] = userFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountUsers(ctx context.Context, filter *user.ListFilter) (int64, error) {
	f := bson.M{}
	if filter != nil && filter.OrgID != "" {
		f["org_id"] = filter.OrgID
	}
	count, err := s.count(ctx, (*userModel)(nil), f)
	if err != nil {
		return 0, fmt.Errorf("binspire/mongo: count users: %w", err)
	}
	return count, nil
}

// ──────────────────────────────────────────────────
// Audit operations
// ──────────────────────────────────────────────────

func (s *Store) CreateAudit(ctx context.Context, a *audit.Audit) error {
	if err := s.checkOwners(ctx, colAudits, a.UserID, a.OrgID); err != nil {
		return err
	}
	stampCreate(&a.CreatedAt, &a.UpdatedAt)
	if a.Changes == nil {
		a.Changes = audit.DefaultChanges()
	}
	if _, err := s.mdb.NewInsert(auditToModel(a)).Exec(ctx); err != nil {
		return classify("create audit", err)
	}
	return nil
}

func (s *Store) GetAudit(ctx context.Context, auditID string) (*audit.Audit, error) {
	var m auditModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": auditID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("audit %s: %w", auditID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("binspire/mongo: get audit: %w", err)
	}
	return auditFromModel(&m), nil
}

func (s *Store) UpdateAudit(ctx context.Context, a *audit.Audit) error {
	if err := s.checkOwners(ctx, colAudits, a.UserID, a.OrgID); err != nil {
		return err
	}
	m := auditToModel(a)
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return classify("update audit", err)
	}
	if res.MatchedCount() == 0 {
		return fmt.Errorf("audit %s: %w", a.ID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteAudit(ctx context.Context, auditID string) error {
	if err := s.mustExist(ctx, (*auditModel)(nil), "audit", auditID); err != nil {
		return err
	}
	if _, err := s.mdb.NewDelete((*auditModel)(nil)).
		Filter(bson.M{"_id": auditID}).
		Exec(ctx); err != nil {
		return fmt.Errorf("binspire/mongo: delete audit: %w", err)
	}
	return nil
}

func (s *Store) ListAudits(ctx context.Context, filter *audit.ListFilter) ([]*audit.Audit, error) {
	var models []auditModel
	q := s.mdb.NewFind(&models).
		Filter(auditFilter(filter)).
		Sort(newestFirst)
	if filter != nil {
		if filter.Limit > 0 {
			q = q.Limit(int64(filter.Limit))
		}
		if filter.Offset > 0 {
			q = q.Skip(int64(filter.Offset))
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("binspire/mongo: list audits: %w", err)
	}
	result := make([]*audit.Audit, len(models))
	for i := range models {
		result[i] = auditFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountAudits(ctx context.Context, filter *audit.ListFilter) (int64, error) {
	count, err := s.count(ctx, (*auditModel)(nil), auditFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("binspire/mongo: count audits: %w", err)
	}
	return count, nil
}

func auditFilter(filter *audit.ListFilter) bson.M {
	f := bson.M{}
	if filter == nil {
		return f
	}
	if filter.OrgID != "" {
		f["org_id"] = filter.OrgID
	}
	if filter.UserID != "" {
		f["user_id"] = filter.UserID
	}
	return f
}

// ──────────────────────────────────────────────────
// History operations
// ──────────────────────────────────────────────────

func (s *Store) CreateHistory(ctx context.Context, h *history.History) error {
	if err := s.checkOwners(ctx, colHistories, h.UserID, h.OrgID); err != nil {
		return err
	}
	stampCreate(&h.CreatedAt, &h.UpdatedAt)
	if _, err := s.mdb.NewInsert(historyToModel(h)).Exec(ctx); err != nil {
		return classify("create history", err)
	}
	return nil
}

func (s *Store) GetHistory(ctx context.Context, historyID string) (*history.History, error) {
	var m historyModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": historyID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("history %s: %w", historyID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("binspire/mongo: get history: %w", err)
	}
	return historyFromModel(&m), nil
}

func (s *Store) UpdateHistory(ctx context.Context, h *history.History) error {
	if err := s.checkOwners(ctx, colHistories, h.UserID, h.OrgID); err != nil {
		return err
	}
	m := historyToModel(h)
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return classify("update history", err)
	}
	if res.MatchedCount() == 0 {
		return fmt.Errorf("history %s: %w", h.ID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteHistory(ctx context.Context, historyID string) error {
	if err := s.mustExist(ctx, (*historyModel)(nil), "history", historyID); err != nil {
		return err
	}
	if _, err := s.mdb.NewDelete((*historyModel)(nil)).
		Filter(bson.M{"_id": historyID}).
		Exec(ctx); err != nil {
		return fmt.Errorf("binspire/mongo: delete history: %w", err)
	}
	return nil
}

func (s *Store) ListHistories(ctx context.Context, filter *history.ListFilter) ([]*history.History, error) {
	var models []historyModel
	q := s.mdb.NewFind(&models).
		Filter(historyFilter(filter)).
		Sort(newestFirst)
	if filter != nil {
		if filter.Limit > 0 {
			q = q.Limit(int64(filter.Limit))
		}
		if filter.Offset > 0 {
			q = q.Skip(int64(filter.Offset))
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("binspire/mongo: list histories: %w", err)
	}
	result := make([]*history.History, len(models))
	for i := range models {
		result[i] = historyFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountHistories(ctx context.Context, filter *history.ListFilter) (int64, error) {
	count, err := s.count(ctx, (*historyModel)(nil), historyFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("binspire/mongo: count histories: %w", err)
	}
	return count, nil
}

func historyFilter(filter *history.ListFilter) bson.M {
	f := bson.M{}
	if filter == nil {
		return f
	}
	if filter.OrgID != "" {
		f["org_id"] = filter.OrgID
	}
	if filter.UserID != "" {
		f["user_id"] = filter.UserID
	}
	return f
}

// ──────────────────────────────────────────────────
// Issue operations
// ──────────────────────────────────────────────────

func (s *Store) CreateIssue(ctx context.Context, i *issue.Issue) error {
	if err := s.checkOwners(ctx, colIssues, i.UserID, i.OrgID); err != nil {
		return err
	}
	stampCreate(&i.CreatedAt, &i.UpdatedAt)
	if i.Priority == "" {
		i.Priority = issue.DefaultPriority
	}
	if i.Status == "" {
		i.Status = issue.DefaultStatus
	}
	if _, err := s.mdb.NewInsert(issueToModel(i)).Exec(ctx); err != nil {
		return classify("create issue", err)
	}
	return nil
}

func (s *Store) GetIssue(ctx context.Context, issueID string) (*issue.Issue, error) {
	var m issueModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": issueID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("issue %s: %w", issueID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("binspire/mongo: get issue: %w", err)
	}
	return issueFromModel(&m), nil
}

func (s *Store) UpdateIssue(ctx context.Context, i *issue.Issue) error {
	if err := s.checkOwners(ctx, colIssues, i.UserID, i.OrgID); err != nil {
		return err
	}
	m := issueToModel(i)
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return classify("update issue", err)
	}
	if res.MatchedCount() == 0 {
		return fmt.Errorf("issue %s: %w", i.ID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteIssue(ctx context.Context, issueID string) error {
	if err := s.mustExist(ctx, (*issueModel)(nil), "issue", issueID); err != nil {
		return err
	}
	if _, err := s.mdb.NewDelete((*issueModel)(nil)).
		Filter(bson.M{"_id": issueID}).
		Exec(ctx); err != nil {
		return fmt.Errorf("binspire/mongo: delete issue: %w", err)
	}
	return nil
}

func (s *Store) ListIssues(ctx context.Context, filter *issue.ListFilter) ([]*issue.Issue, error) {
	var models []issueModel
	q := s.mdb.NewFind(&models).
		Filter(issueFilter(filter)).
		Sort(newestFirst)
	if filter != nil {
		if filter.Limit > 0 {
			q = q.Limit(int64(filter.Limit))
		}
		if filter.Offset > 0 {
			q = q.Skip(int64(filter.Offset))
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("binspire/mongo: list issues: %w", err)
	}
	result := make([]*issue.Issue, len(models))
	for i := range models {
		result[i] = issueFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountIssues(ctx context.Context, filter *issue.ListFilter) (int64, error) {
	count, err := s.count(ctx, (*issueModel)(nil), issueFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("binspire/mongo: count issues: %w", err)
	}
	return count, nil
}

func issueFilter(filter *issue.ListFilter) bson.M {
	f := bson.M{}
	if filter == nil {
		return f
	}
	if filter.OrgID != "" {
		f["org_id"] = filter.OrgID
	}
	if filter.UserID != "" {
		f["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		f["status"] = string(filter.Status)
	}
	return f
}

// ──────────────────────────────────────────────────
// Relational emulation
// ──────────────────────────────────────────────────

func (s *Store) count(ctx context.Context, model any, filter bson.M) (int64, error) {
	return s.mdb.NewFind(model).
		Filter(filter).
		Count(ctx)
}

// mustExist returns store.ErrNotFound when no document has the given id.
func (s *Store) mustExist(ctx context.Context, model any, entity, entityID string) error {
	n, err := s.count(ctx, model, bson.M{"_id": entityID})
	if err != nil {
		return fmt.Errorf("binspire/mongo: lookup %s: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, entityID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) checkOrganization(ctx context.Context, col, orgID string) error {
	n, err := s.count(ctx, (*organizationModel)(nil), bson.M{"_id": orgID})
	if err != nil {
		return fmt.Errorf("binspire/mongo: lookup organization: %w", err)
	}
	if n == 0 {
		return fkViolation(col + "_org_id_organization_id_fk")
	}
	return nil
}

// checkOwners enforces the user and organization references shared by the
// audit, history and issues collections.
func (s *Store) checkOwners(ctx context.Context, col, userID, orgID string) error {
	n, err := s.count(ctx, (*userModel)(nil), bson.M{"_id": userID})
	if err != nil {
		return fmt.Errorf("binspire/mongo: lookup user: %w", err)
	}
	if n == 0 {
		return fkViolation(col + "_user_id_user_id_fk")
	}
	return s.checkOrganization(ctx, col, orgID)
}

// deleteOwned removes the audits, history and issues matching filter.
func (s *Store) deleteOwned(ctx context.Context, filter bson.M) error {
	for _, model := range []any{(*auditModel)(nil), (*historyModel)(nil), (*issueModel)(nil)} {
		if _, err := s.mdb.NewDelete(model).
			Many().
			Filter(filter).
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func fkViolation(constraint string) error {
	return fmt.Errorf("binspire/mongo: violates foreign key constraint %q: %w", constraint, store.ErrConstraint)
}

func classify(op string, err error) error {
	if mongod.IsDuplicateKeyError(err) {
		return fmt.Errorf("binspire/mongo: %s: %s: %w", op, err.Error(), store.ErrConstraint)
	}
	return fmt.Errorf("binspire/mongo: %s: %w", op, err)
}

// stampCreate fills zero timestamps before insert.
func stampCreate(createdAt, updatedAt *time.Time) {
	t := now()
	if createdAt.IsZero() {
		*createdAt = t
	}
	if updatedAt.IsZero() {
		*updatedAt = t
	}
}
