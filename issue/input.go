package issue

import (
	"time"

	"github.com/xraph/binspire/enum"
)

// CreateInput is the payload accepted when creating an issue.
type CreateInput struct {
	ID          *string            `json:"id,omitempty" jsonschema:"issue ID, generated when omitted" validate:"omitnil,min=1"`
	UserID      *string            `json:"userId" jsonschema:"ID of the reporting user" validate:"required"`
	Title       *string            `json:"title" jsonschema:"short summary" validate:"required"`
	Description *string            `json:"description" jsonschema:"full description of the problem" validate:"required"`
	Entity      *enum.SystemEntity `json:"entity" jsonschema:"area of the system affected" validate:"required,enum"`
	Priority    *enum.Priority     `json:"priority,omitempty" jsonschema:"urgency, defaults to medium" validate:"omitnil,enum"`
	Status      *enum.IssueStatus  `json:"status,omitempty" jsonschema:"workflow state, defaults to open" validate:"omitnil,enum"`
	OrgID       *string            `json:"orgId" jsonschema:"ID of the organization" validate:"required"`
	CreatedAt   *time.Time         `json:"createdAt,omitempty" jsonschema:"creation time, defaults to now"`
	UpdatedAt   *time.Time         `json:"updatedAt,omitempty" jsonschema:"last update time, defaults to now"`
}

// Issue builds the entity described by the input.
func (in *CreateInput) Issue() *Issue {
	i := &Issue{
		ID:          deref(in.ID),
		UserID:      deref(in.UserID),
		Title:       deref(in.Title),
		Description: deref(in.Description),
		OrgID:       deref(in.OrgID),
		Priority:    DefaultPriority,
		Status:      DefaultStatus,
	}
	if in.Entity != nil {
		i.Entity = *in.Entity
	}
	if in.Priority != nil {
		i.Priority = *in.Priority
	}
	if in.Status != nil {
		i.Status = *in.Status
	}
	if in.CreatedAt != nil {
		i.CreatedAt = *in.CreatedAt
	}
	if in.UpdatedAt != nil {
		i.UpdatedAt = *in.UpdatedAt
	}
	return i
}

// UpdateInput is a partial issue. Only non-nil fields are applied.
type UpdateInput struct {
	UserID      *string            `json:"userId,omitempty" jsonschema:"ID of the reporting user"`
	Title       *string            `json:"title,omitempty" jsonschema:"short summary"`
	Description *string            `json:"description,omitempty" jsonschema:"full description of the problem"`
	Entity      *enum.SystemEntity `json:"entity,omitempty" jsonschema:"area of the system affected" validate:"omitnil,enum"`
	Priority    *enum.Priority     `json:"priority,omitempty" jsonschema:"urgency" validate:"omitnil,enum"`
	Status      *enum.IssueStatus  `json:"status,omitempty" jsonschema:"workflow state" validate:"omitnil,enum"`
	OrgID       *string            `json:"orgId,omitempty" jsonschema:"ID of the organization"`
	UpdatedAt   *time.Time         `json:"updatedAt,omitempty" jsonschema:"last update time, defaults to now"`
}

// Apply copies the set fields onto i.
func (in *UpdateInput) Apply(i *Issue) {
	if in.UserID != nil {
		i.UserID = *in.UserID
	}
	if in.Title != nil {
		i.Title = *in.Title
	}
	if in.Description != nil {
		i.Description = *in.Description
	}
	if in.Entity != nil {
		i.Entity = *in.Entity
	}
	if in.Priority != nil {
		i.Priority = *in.Priority
	}
	if in.Status != nil {
		i.Status = *in.Status
	}
	if in.OrgID != nil {
		i.OrgID = *in.OrgID
	}
	if in.UpdatedAt != nil {
		i.UpdatedAt = *in.UpdatedAt
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
