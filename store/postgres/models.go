package postgres

import (
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/enum"
	"github.com/xraph/binspire/history"
	"github.com/xraph/binspire/issue"
	"github.com/xraph/binspire/organization"
	"github.com/xraph/binspire/user"
)

// ──────────────────────────────────────────────────
// Organization model
// ──────────────────────────────────────────────────

type organizationModel struct {
	grove.BaseModel `grove:"table:organization"`
	ID              string    `grove:"id,pk"`
	Name            string    `grove:"name,notnull"`
	Email           string    `grove:"email,notnull"`
	Slug            string    `grove:"slug,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func organizationToModel(o *organization.Organization) *organizationModel {
	return &organizationModel{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Slug:      o.Slug,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func organizationFromModel(m *organizationModel) *organization.Organization {
	return &organization.Organization{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Slug:      m.Slug,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// ──────────────────────────────────────────────────
// User model
// ──────────────────────────────────────────────────

type userModel struct {
	grove.BaseModel `grove:"table:user"`
	ID              string    `grove:"id,pk"`
	OrgID           string    `grove:"org_id,notnull"`
	Name            string    `grove:"name,notnull"`
	Email           string    `grove:"email,notnull"`
	EmailVerified   bool      `grove:"email_verified,notnull"`
	Image           *string   `grove:"image"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func userToModel(u *user.User) *userModel {
	return &userModel{
		ID:            u.ID,
		OrgID:         u.OrgID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Image:         u.Image,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func userFromModel(m *userModel) *user.User {
	return &user.User{
		ID:            m.ID,
		OrgID:         m.OrgID,
		Name:          m.Name,
		Email:         m.Email,
		EmailVerified: m.EmailVerified,
		Image:         m.Image,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

// ──────────────────────────────────────────────────
// Audit model
// ──────────────────────────────────────────────────

type auditModel struct {
	grove.BaseModel `grove:"table:audit"`
	ID              string         `grove:"id,pk"`
	UserID          string         `grove:"user_id,notnull"`
	OrgID           string         `grove:"org_id,notnull"`
	Title           string         `grove:"title,notnull"`
	Entity          string         `grove:"entity,notnull"`
	Changes         map[string]any `grove:"changes,type:jsonb"`
	Action          string         `grove:"action,notnull"`
	CreatedAt       time.Time      `grove:"created_at,notnull"`
	UpdatedAt       time.Time      `grove:"updated_at,notnull"`
}

func auditToModel(a *audit.Audit) *auditModel {
	changes := a.Changes
	if changes == nil {
		changes = audit.DefaultChanges()
	}
	return &auditModel{
		ID:        a.ID,
		UserID:    a.UserID,
		OrgID:     a.OrgID,
		Title:     a.Title,
		Entity:    string(a.Entity),
		Changes:   changes,
		Action:    string(a.Action),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func auditFromModel(m *auditModel) *audit.Audit {
	return &audit.Audit{
		ID:        m.ID,
		UserID:    m.UserID,
		OrgID:     m.OrgID,
		Title:     m.Title,
		Entity:    enum.SystemEntity(m.Entity),
		Changes:   m.Changes,
		Action:    enum.AuditAction(m.Action),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// ──────────────────────────────────────────────────
// History model
// ──────────────────────────────────────────────────

type historyModel struct {
	grove.BaseModel `grove:"table:history"`
	ID              string    `grove:"id,pk"`
	Title           string    `grove:"title,notnull"`
	Entity          string    `grove:"entity,notnull"`
	OrgID           string    `grove:"org_id,notnull"`
	UserID          string    `grove:"user_id,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func historyToModel(h *history.History) *historyModel {
	return &historyModel{
		ID:        h.ID,
		Title:     h.Title,
		Entity:    string(h.Entity),
		OrgID:     h.OrgID,
		UserID:    h.UserID,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

func historyFromModel(m *historyModel) *history.History {
	return &history.History{
		ID:        m.ID,
		Title:     m.Title,
		Entity:    enum.SystemEntity(m.Entity),
		OrgID:     m.OrgID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// ──────────────────────────────────────────────────
// Issue model
// ──────────────────────────────────────────────────

type issueModel struct {
	grove.BaseModel `grove:"table:issues"`
	ID              string    `grove:"id,pk"`
	UserID          string    `grove:"user_id,notnull"`
	Title           string    `grove:"title,notnull"`
	Description     string    `grove:"description,notnull"`
	Entity          string    `grove:"entity,notnull"`
	Priority        string    `grove:"priority,notnull"`
	Status          string    `grove:"status,notnull"`
	OrgID           string    `grove:"org_id,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func issueToModel(i *issue.Issue) *issueModel {
	m := &issueModel{
		ID:          i.ID,
		UserID:      i.UserID,
		Title:       i.Title,
		Description: i.Description,
		Entity:      string(i.Entity),
		Priority:    string(i.Priority),
		Status:      string(i.Status),
		OrgID:       i.OrgID,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
	if m.Priority == "" {
		m.Priority = string(issue.DefaultPriority)
	}
	if m.Status == "" {
		m.Status = string(issue.DefaultStatus)
	}
	return m
}

func issueFromModel(m *issueModel) *issue.Issue {
	return &issue.Issue{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Entity:      enum.SystemEntity(m.Entity),
		Priority:    enum.Priority(m.Priority),
		Status:      enum.IssueStatus(m.Status),
		OrgID:       m.OrgID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}
