package tools

import (
	"context"

	"github.com/xraph/binspire"
	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/history"
	"github.com/xraph/binspire/issue"
	"github.com/xraph/binspire/organization"
	"github.com/xraph/binspire/user"
)

var (
	organizationNoun = noun{binspire.EntityOrganization, "organizations", "Organization", "Organizations", "an", "organization"}
	userNoun         = noun{binspire.EntityUser, "users", "User", "Users", "a", "user"}
	auditNoun        = noun{binspire.EntityAudit, "audits", "Audit", "Audits", "an", "audit entry"}
	historyNoun      = noun{binspire.EntityHistory, "histories", "History", "Histories", "a", "history record"}
	issueNoun        = noun{binspire.EntityIssue, "issues", "Issue", "Issues", "an", "issue entry"}

	nouns = []noun{organizationNoun, userNoun, auditNoun, historyNoun, issueNoun}
)

func (k *Toolkit) organizations() set[organization.Organization, organization.CreateInput, organization.UpdateInput] {
	return set[organization.Organization, organization.CreateInput, organization.UpdateInput]{
		noun: organizationNoun,
		id:   func(o *organization.Organization) string { return o.ID },
		fetchAll: func(ctx context.Context, _, _ int) ([]*organization.Organization, error) {
			return k.eng.ListOrganizations(ctx, nil)
		},
		fetchOne: k.eng.GetOrganization,
		insert:   k.eng.CreateOrganization,
		patch:    k.eng.UpdateOrganization,
		remove:   k.eng.DeleteOrganization,
	}
}

func (k *Toolkit) users() set[user.User, user.CreateInput, user.UpdateInput] {
	return set[user.User, user.CreateInput, user.UpdateInput]{
		noun:      userNoun,
		paginated: true,
		id:        func(u *user.User) string { return u.ID },
		fetchAll: func(ctx context.Context, limit, offset int) ([]*user.User, error) {
			return k.eng.ListUsers(ctx, &user.ListFilter{Limit: limit, Offset: offset})
		},
		fetchOne: k.eng.GetUser,
		insert:   k.eng.CreateUser,
		patch:    k.eng.UpdateUser,
		remove:   k.eng.DeleteUser,
	}
}

func (k *Toolkit) audits() set[audit.Audit, audit.CreateInput, audit.UpdateInput] {
	return set[audit.Audit, audit.CreateInput, audit.UpdateInput]{
		noun: auditNoun,
		id:   func(a *audit.Audit) string { return a.ID },
		fetchAll: func(ctx context.Context, _, _ int) ([]*audit.Audit, error) {
			return k.eng.ListAudits(ctx, nil)
		},
		fetchOne: k.eng.GetAudit,
		insert:   k.eng.CreateAudit,
		patch:    k.eng.UpdateAudit,
		remove:   k.eng.DeleteAudit,
	}
}

func (k *Toolkit) histories() set[history.History, history.CreateInput, history.UpdateInput] {
	return set[history.History, history.CreateInput, history.UpdateInput]{
		noun:      historyNoun,
		paginated: true,
		id:        func(h *history.History) string { return h.ID },
		fetchAll: func(ctx context.Context, limit, offset int) ([]*history.History, error) {
			return k.eng.ListHistories(ctx, &history.ListFilter{Limit: limit, Offset: offset})
		},
		fetchOne: k.eng.GetHistory,
		insert:   k.eng.CreateHistory,
		patch:    k.eng.UpdateHistory,
		remove:   k.eng.DeleteHistory,
	}
}

func (k *Toolkit) issues() set[issue.Issue, issue.CreateInput, issue.UpdateInput] {
	return set[issue.Issue, issue.CreateInput, issue.UpdateInput]{
		noun:      issueNoun,
		paginated: true,
		id:        func(i *issue.Issue) string { return i.ID },
		fetchAll: func(ctx context.Context, limit, offset int) ([]*issue.Issue, error) {
			return k.eng.ListIssues(ctx, &issue.ListFilter{Limit: limit, Offset: offset})
		},
		fetchOne: k.eng.GetIssue,
		insert:   k.eng.CreateIssue,
		patch:    k.eng.UpdateIssue,
		remove:   k.eng.DeleteIssue,
	}
}
