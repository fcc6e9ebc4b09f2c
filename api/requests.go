package api

import (
	"time"

	"github.com/xraph/binspire/enum"
)

// Request bodies mirror the entity inputs field for field so they convert
// directly (audit.CreateInput(*req)). They carry no validate tags; the
// handlers run the binspire rules on the converted input.

// ──────────────────────────────────────────────────
// Shared requests
// ──────────────────────────────────────────────────

// IDRequest is the path parameter shared by the single-row routes.
type IDRequest struct {
	ID string `path:"id" description:"Row ID"`
}

// PageRequest holds the query parameters common to every list route.
type PageRequest struct {
	Limit  int `query:"limit" optional:"true" description:"Maximum results (default: 50, max: 100)"`
	Offset int `query:"offset" optional:"true" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Organization requests
// ──────────────────────────────────────────────────

// CreateOrganizationRequest is the body for creating an organization.
type CreateOrganizationRequest struct {
	ID        *string    `json:"id,omitempty" description:"Organization ID, generated when omitted"`
	Name      *string    `json:"name" description:"Display name"`
	Email     *string    `json:"email" description:"Contact email, unique across organizations"`
	Slug      *string    `json:"slug" description:"URL-safe slug"`
	CreatedAt *time.Time `json:"createdAt,omitempty" description:"Creation time, defaults to now"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" description:"Last update time, defaults to now"`
}

// UpdateOrganizationRequest is the body for updating an organization.
type UpdateOrganizationRequest struct {
	Name      *string    `json:"name,omitempty" description:"Display name"`
	Email     *string    `json:"email,omitempty" description:"Contact email"`
	Slug      *string    `json:"slug,omitempty" description:"URL-safe slug"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" description:"Last update time, defaults to now"`
}

// ──────────────────────────────────────────────────
// User requests
// ──────────────────────────────────────────────────

// CreateUserRequest is the body for creating a user.
type CreateUserRequest struct {
	ID            *string    `json:"id,omitempty" description:"User ID, generated when omitted"`
	OrgID         *string    `json:"orgId" description:"Owning organization"`
	Name          *string    `json:"name" description:"Display name"`
	Email         *string    `json:"email" description:"Email address, unique across users"`
	EmailVerified *bool      `json:"emailVerified" description:"Whether the email address has been verified"`
	Image         *string    `json:"image,omitempty" description:"Avatar URL"`
	CreatedAt     *time.Time `json:"createdAt,omitempty" description:"Creation time, defaults to now"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty" description:"Last update time, defaults to now"`
}

// UpdateUserRequest is the body for updating a user.
type UpdateUserRequest struct {
	OrgID         *string    `json:"orgId,omitempty" description:"Owning organization"`
	Name          *string    `json:"name,omitempty" description:"Display name"`
	Email         *string    `json:"email,omitempty" description:"Email address"`
	EmailVerified *bool      `json:"emailVerified,omitempty" description:"Whether the email address has been verified"`
	Image         *string    `json:"image,omitempty" description:"Avatar URL"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty" description:"Last update time, defaults to now"`
}

// ListUsersRequest holds query parameters for listing users.
type ListUsersRequest struct {
	OrgID  string `query:"orgId" optional:"true" description:"Filter by organization"`
	Limit  int    `query:"limit" optional:"true" description:"Maximum results (default: 50, max: 100)"`
	Offset int    `query:"offset" optional:"true" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Audit requests
// ──────────────────────────────────────────────────

// CreateAuditRequest is the body for creating an audit entry.
type CreateAuditRequest struct {
	ID        *string            `json:"id,omitempty" description:"Audit ID, generated when omitted"`
	UserID    *string            `json:"userId" description:"Acting user"`
	OrgID     *string            `json:"orgId" description:"Organization"`
	Title     *string            `json:"title" description:"Short summary of the action"`
	Entity    *enum.SystemEntity `json:"entity" description:"Area of the system the action touched"`
	Changes   map[string]any     `json:"changes,omitempty" description:"Before/after snapshot"`
	Action    *enum.AuditAction  `json:"action" description:"Kind of action performed"`
	CreatedAt *time.Time         `json:"createdAt,omitempty" description:"Creation time, defaults to now"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty" description:"Last update time, defaults to now"`
}

// UpdateAuditRequest is the body for updating an audit entry.
type UpdateAuditRequest struct {
	UserID    *string            `json:"userId,omitempty" description:"Acting user"`
	OrgID     *string            `json:"orgId,omitempty" description:"Organization"`
	Title     *string            `json:"title,omitempty" description:"Short summary of the action"`
	Entity    *enum.SystemEntity `json:"entity,omitempty" description:"Area of the system the action touched"`
	Changes   map[string]any     `json:"changes,omitempty" description:"Before/after snapshot"`
	Action    *enum.AuditAction  `json:"action,omitempty" description:"Kind of action performed"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty" description:"Last update time, defaults to now"`
}

// ListAuditsRequest holds query parameters for listing audits.
type ListAuditsRequest struct {
	OrgID  string `query:"orgId" optional:"true" description:"Filter by organization"`
	UserID string `query:"userId" optional:"true" description:"Filter by acting user"`
	Limit  int    `query:"limit" optional:"true" description:"Maximum results (default: 50, max: 100)"`
	Offset int    `query:"offset" optional:"true" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// History requests
// ──────────────────────────────────────────────────

// CreateHistoryRequest is the body for creating a history entry.
type CreateHistoryRequest struct {
	ID        *string            `json:"id,omitempty" description:"History ID, generated when omitted"`
	Title     *string            `json:"title" description:"Feed entry text"`
	Entity    *enum.SystemEntity `json:"entity" description:"Area of the system the entry refers to"`
	OrgID     *string            `json:"orgId" description:"Organization"`
	UserID    *string            `json:"userId" description:"User"`
	CreatedAt *time.Time         `json:"createdAt,omitempty" description:"Creation time, defaults to now"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty" description:"Last update time, defaults to now"`
}

// UpdateHistoryRequest is the body for updating a history entry.
type UpdateHistoryRequest struct {
	Title     *string            `json:"title,omitempty" description:"Feed entry text"`
	Entity    *enum.SystemEntity `json:"entity,omitempty" description:"Area of the system the entry refers to"`
	OrgID     *string            `json:"orgId,omitempty" description:"Organization"`
	UserID    *string            `json:"userId,omitempty" description:"User"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty" description:"Last update time, defaults to now"`
}

// ListHistoriesRequest holds query parameters for listing history entries.
type ListHistoriesRequest struct {
	OrgID  string `query:"orgId" optional:"true" description:"Filter by organization"`
	UserID string `query:"userId" optional:"true" description:"Filter by user"`
	Limit  int    `query:"limit" optional:"true" description:"Maximum results (default: 50, max: 100)"`
	Offset int    `query:"offset" optional:"true" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Issue requests
// ──────────────────────────────────────────────────

// CreateIssueRequest is the body for creating an issue.
type CreateIssueRequest struct {
	ID          *string            `json:"id,omitempty" description:"Issue ID, generated when omitted"`
	UserID      *string            `json:"userId" description:"Reporting user"`
	Title       *string            `json:"title" description:"Short summary"`
	Description *string            `json:"description" description:"Full description of the problem"`
	Entity      *enum.SystemEntity `json:"entity" description:"Area of the system affected"`
	Priority    *enum.Priority     `json:"priority,omitempty" description:"Urgency, defaults to medium"`
	Status      *enum.IssueStatus  `json:"status,omitempty" description:"Workflow state, defaults to open"`
	OrgID       *string            `json:"orgId" description:"Organization"`
	CreatedAt   *time.Time         `json:"createdAt,omitempty" description:"Creation time, defaults to now"`
	UpdatedAt   *time.Time         `json:"updatedAt,omitempty" description:"Last update time, defaults to now"`
}

// UpdateIssueRequest is the body for updating an issue.
type UpdateIssueRequest struct {
	UserID      *string            `json:"userId,omitempty" description:"Reporting user"`
	Title       *string            `json:"title,omitempty" description:"Short summary"`
	Description *string            `json:"description,omitempty" description:"Full description of the problem"`
	Entity      *enum.SystemEntity `json:"entity,omitempty" description:"Area of the system affected"`
	Priority    *enum.Priority     `json:"priority,omitempty" description:"Urgency"`
	Status      *enum.IssueStatus  `json:"status,omitempty" description:"Workflow state"`
	OrgID       *string            `json:"orgId,omitempty" description:"Organization"`
	UpdatedAt   *time.Time         `json:"updatedAt,omitempty" description:"Last update time, defaults to now"`
}

// ListIssuesRequest holds query parameters for listing issues.
type ListIssuesRequest struct {
	OrgID  string           `query:"orgId" optional:"true" description:"Filter by organization"`
	UserID string           `query:"userId" optional:"true" description:"Filter by reporter"`
	Status enum.IssueStatus `query:"status" optional:"true" description:"Filter by status"`
	Limit  int              `query:"limit" optional:"true" description:"Maximum results (default: 50, max: 100)"`
	Offset int              `query:"offset" optional:"true" description:"Results to skip"`
}
