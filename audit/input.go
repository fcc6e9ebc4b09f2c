package audit

import (
	"time"

	"github.com/xraph/binspire/enum"
)

// CreateInput is the payload accepted when creating an audit.
type CreateInput struct {
	ID        *string            `json:"id,omitempty" jsonschema:"audit ID, generated when omitted" validate:"omitnil,min=1"`
	UserID    *string            `json:"userId" jsonschema:"ID of the acting user" validate:"required"`
	OrgID     *string            `json:"orgId" jsonschema:"ID of the organization" validate:"required"`
	Title     *string            `json:"title" jsonschema:"short summary of the action" validate:"required"`
	Entity    *enum.SystemEntity `json:"entity" jsonschema:"area of the system the action touched" validate:"required,enum"`
	Changes   map[string]any     `json:"changes,omitempty" jsonschema:"before/after snapshot, defaults to {after: null, before: null}"`
	Action    *enum.AuditAction  `json:"action" jsonschema:"kind of action performed" validate:"required,enum"`
	CreatedAt *time.Time         `json:"createdAt,omitempty" jsonschema:"creation time, defaults to now"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty" jsonschema:"last update time, defaults to now"`
}

// Audit builds the entity described by the input.
func (in *CreateInput) Audit() *Audit {
	a := &Audit{
		ID:      deref(in.ID),
		UserID:  deref(in.UserID),
		OrgID:   deref(in.OrgID),
		Title:   deref(in.Title),
		Changes: in.Changes,
	}
	if in.Entity != nil {
		a.Entity = *in.Entity
	}
	if in.Action != nil {
		a.Action = *in.Action
	}
	if a.Changes == nil {
		a.Changes = DefaultChanges()
	}
	if in.CreatedAt != nil {
		a.CreatedAt = *in.CreatedAt
	}
	if in.UpdatedAt != nil {
		a.UpdatedAt = *in.UpdatedAt
	}
	return a
}

// UpdateInput is a partial audit. Only non-nil fields are applied.
type UpdateInput struct {
	UserID    *string            `json:"userId,omitempty" jsonschema:"ID of the acting user"`
	OrgID     *string            `json:"orgId,omitempty" jsonschema:"ID of the organization"`
	Title     *string            `json:"title,omitempty" jsonschema:"short summary of the action"`
	Entity    *enum.SystemEntity `json:"entity,omitempty" jsonschema:"area of the system the action touched" validate:"omitnil,enum"`
	Changes   map[string]any     `json:"changes,omitempty" jsonschema:"before/after snapshot"`
	Action    *enum.AuditAction  `json:"action,omitempty" jsonschema:"kind of action performed" validate:"omitnil,enum"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty" jsonschema:"last update time, defaults to now"`
}

// Apply copies the set fields onto a.
func (in *UpdateInput) Apply(a *Audit) {
	if in.UserID != nil {
		a.UserID = *in.UserID
	}
	if in.OrgID != nil {
		a.OrgID = *in.OrgID
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Entity != nil {
		a.Entity = *in.Entity
	}
	if in.Changes != nil {
		a.Changes = in.Changes
	}
	if in.Action != nil {
		a.Action = *in.Action
	}
	if in.UpdatedAt != nil {
		a.UpdatedAt = *in.UpdatedAt
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
