// Package enum defines the closed value sets shared by Binspire entities.
// The values mirror the PostgreSQL enum types of the relational schema and
// are part of the wire contract.
package enum

import "slices"

// SystemEntity names the area of the system an audit, history or issue
// row refers to (pg enum "system_entity").
type SystemEntity string

// SystemEntity values.
const (
	EntityUserManagement           SystemEntity = "userManagement"
	EntityTrashbinManagement       SystemEntity = "trashbinManagement"
	EntitySettingsManagement       SystemEntity = "settingsManagement"
	EntityDashboardManagement      SystemEntity = "dashboardManagement"
	EntityBoardManagement          SystemEntity = "boardManagement"
	EntityIssueManagement          SystemEntity = "issueManagement"
	EntityActivityManagement       SystemEntity = "activityManagement"
	EntityHistoryManagement        SystemEntity = "historyManagement"
	EntityAccessRequestsManagement SystemEntity = "accessRequestsManagement"
	EntityInvitationsManagement    SystemEntity = "invitationsManagement"
	EntityCollectionsManagement    SystemEntity = "collectionsManagement"
	EntityMapManagement            SystemEntity = "mapManagement"
	EntityGreenHeartsManagement    SystemEntity = "greenHeartsManagement"
	EntityAuthentication           SystemEntity = "authentication"
	EntityAuthorization            SystemEntity = "authorization"
)

var systemEntities = []SystemEntity{
	EntityUserManagement,
	EntityTrashbinManagement,
	EntitySettingsManagement,
	EntityDashboardManagement,
	EntityBoardManagement,
	EntityIssueManagement,
	EntityActivityManagement,
	EntityHistoryManagement,
	EntityAccessRequestsManagement,
	EntityInvitationsManagement,
	EntityCollectionsManagement,
	EntityMapManagement,
	EntityGreenHeartsManagement,
	EntityAuthentication,
	EntityAuthorization,
}

// SystemEntities returns every SystemEntity value in declaration order.
func SystemEntities() []SystemEntity { return slices.Clone(systemEntities) }

// IsValid reports whether e is a declared SystemEntity.
func (e SystemEntity) IsValid() bool { return slices.Contains(systemEntities, e) }

// AuditAction is the kind of action an audit row records (pg enum "audit_action").
type AuditAction string

// AuditAction values.
const (
	ActionCreate         AuditAction = "create"
	ActionUpdate         AuditAction = "update"
	ActionDelete         AuditAction = "delete"
	ActionArchive        AuditAction = "archive"
	ActionRestore        AuditAction = "restore"
	ActionLogin          AuditAction = "login"
	ActionLogout         AuditAction = "logout"
	ActionInvite         AuditAction = "invite"
	ActionAcceptInvite   AuditAction = "accept_invite"
	ActionRejectInvite   AuditAction = "reject_invite"
	ActionApproveRequest AuditAction = "approve_request"
	ActionRejectRequest  AuditAction = "reject_request"
)

var auditActions = []AuditAction{
	ActionCreate,
	ActionUpdate,
	ActionDelete,
	ActionArchive,
	ActionRestore,
	ActionLogin,
	ActionLogout,
	ActionInvite,
	ActionAcceptInvite,
	ActionRejectInvite,
	ActionApproveRequest,
	ActionRejectRequest,
}

// AuditActions returns every AuditAction value in declaration order.
func AuditActions() []AuditAction { return slices.Clone(auditActions) }

// IsValid reports whether a is a declared AuditAction.
func (a AuditAction) IsValid() bool { return slices.Contains(auditActions, a) }

// IssueStatus is the workflow state of an issue (pg enum "issue_status").
type IssueStatus string

// IssueStatus values.
const (
	StatusOpen       IssueStatus = "open"
	StatusInProgress IssueStatus = "in_progress"
	StatusResolved   IssueStatus = "resolved"
	StatusClosed     IssueStatus = "closed"
)

var issueStatuses = []IssueStatus{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

// IssueStatuses returns every IssueStatus value in declaration order.
func IssueStatuses() []IssueStatus { return slices.Clone(issueStatuses) }

// IsValid reports whether s is a declared IssueStatus.
func (s IssueStatus) IsValid() bool { return slices.Contains(issueStatuses, s) }

// Priority is the urgency of an issue (pg enum "priority_scores").
type Priority string

// Priority values.
const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Priorities returns every Priority value in declaration order.
func Priorities() []Priority { return slices.Clone(priorities) }

// IsValid reports whether p is a declared Priority.
func (p Priority) IsValid() bool { return slices.Contains(priorities, p) }
