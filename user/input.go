package user

import "time"

// CreateInput is the payload accepted when creating a user.
type CreateInput struct {
	ID            *string    `json:"id,omitempty" jsonschema:"user ID, generated when omitted" validate:"omitnil,min=1"`
	OrgID         *string    `json:"orgId" jsonschema:"ID of the owning organization" validate:"required"`
	Name          *string    `json:"name" jsonschema:"display name" validate:"required"`
	Email         *string    `json:"email" jsonschema:"email address, unique across users" validate:"required"`
	EmailVerified *bool      `json:"emailVerified" jsonschema:"whether the email address has been verified" validate:"required"`
	Image         *string    `json:"image,omitempty" jsonschema:"avatar URL"`
	CreatedAt     *time.Time `json:"createdAt,omitempty" jsonschema:"creation time, defaults to now"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty" jsonschema:"last update time, defaults to now"`
}

// User builds the entity described by the input.
func (in *CreateInput) User() *User {
	u := &User{
		ID:    deref(in.ID),
		OrgID: deref(in.OrgID),
		Name:  deref(in.Name),
		Email: deref(in.Email),
		Image: in.Image,
	}
	if in.EmailVerified != nil {
		u.EmailVerified = *in.EmailVerified
	}
	if in.CreatedAt != nil {
		u.CreatedAt = *in.CreatedAt
	}
	if in.UpdatedAt != nil {
		u.UpdatedAt = *in.UpdatedAt
	}
	return u
}

// UpdateInput is a partial user. Only non-nil fields are applied.
type UpdateInput struct {
	OrgID         *string    `json:"orgId,omitempty" jsonschema:"ID of the owning organization"`
	Name          *string    `json:"name,omitempty" jsonschema:"display name"`
	Email         *string    `json:"email,omitempty" jsonschema:"email address"`
	EmailVerified *bool      `json:"emailVerified,omitempty" jsonschema:"whether the email address has been verified"`
	Image         *string    `json:"image,omitempty" jsonschema:"avatar URL"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty" jsonschema:"last update time, defaults to now"`
}

// Apply copies the set fields onto u.
func (in *UpdateInput) Apply(u *User) {
	if in.OrgID != nil {
		u.OrgID = *in.OrgID
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.EmailVerified != nil {
		u.EmailVerified = *in.EmailVerified
	}
	if in.Image != nil {
		u.Image = in.Image
	}
	if in.UpdatedAt != nil {
		u.UpdatedAt = *in.UpdatedAt
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
