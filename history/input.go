package history

import (
	"time"

	"github.com/xraph/binspire/enum"
)

// CreateInput is the payload accepted when creating a history entry.
type CreateInput struct {
	ID        *string            `json:"id,omitempty" jsonschema:"history ID, generated when omitted" validate:"omitnil,min=1"`
	Title     *string            `json:"title" jsonschema:"feed entry text" validate:"required"`
	Entity    *enum.SystemEntity `json:"entity" jsonschema:"area of the system the entry refers to" validate:"required,enum"`
	OrgID     *string            `json:"orgId" jsonschema:"ID of the organization" validate:"required"`
	UserID    *string            `json:"userId" jsonschema:"ID of the user" validate:"required"`
	CreatedAt *time.Time         `json:"createdAt,omitempty" jsonschema:"creation time, defaults to now"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty" jsonschema:"last update time, defaults to now"`
}

// History builds the entity described by the input.
func (in *CreateInput) History() *History {
	h := &History{
		ID:     deref(in.ID),
		Title:  deref(in.Title),
		OrgID:  deref(in.OrgID),
		UserID: deref(in.UserID),
	}
	if in.Entity != nil {
		h.Entity = *in.Entity
	}
	if in.CreatedAt != nil {
		h.CreatedAt = *in.CreatedAt
	}
	if in.UpdatedAt != nil {
		h.UpdatedAt = *in.UpdatedAt
	}
	return h
}

// UpdateInput is a partial history entry. Only non-nil fields are applied.
type UpdateInput struct {
	Title     *string            `json:"title,omitempty" jsonschema:"feed entry text"`
	Entity    *enum.SystemEntity `json:"entity,omitempty" jsonschema:"area of the system the entry refers to" validate:"omitnil,enum"`
	OrgID     *string            `json:"orgId,omitempty" jsonschema:"ID of the organization"`
	UserID    *string            `json:"userId,omitempty" jsonschema:"ID of the user"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty" jsonschema:"last update time, defaults to now"`
}

// Apply copies the set fields onto h.
func (in *UpdateInput) Apply(h *History) {
	if in.Title != nil {
		h.Title = *in.Title
	}
	if in.Entity != nil {
		h.Entity = *in.Entity
	}
	if in.OrgID != nil {
		h.OrgID = *in.OrgID
	}
	if in.UserID != nil {
		h.UserID = *in.UserID
	}
	if in.UpdatedAt != nil {
		h.UpdatedAt = *in.UpdatedAt
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
