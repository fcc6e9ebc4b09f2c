package organization

import "time"

// CreateInput is the payload accepted when creating an organization.
type CreateInput struct {
	ID        *string    `json:"id,omitempty" jsonschema:"organization ID, generated when omitted" validate:"omitnil,min=1"`
	Name      *string    `json:"name" jsonschema:"display name" validate:"required"`
	Email     *string    `json:"email" jsonschema:"contact email, unique across organizations" validate:"required"`
	Slug      *string    `json:"slug" jsonschema:"URL-safe slug" validate:"required"`
	CreatedAt *time.Time `json:"createdAt,omitempty" jsonschema:"creation time, defaults to now"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" jsonschema:"last update time, defaults to now"`
}

// Organization builds the entity described by the input.
func (in *CreateInput) Organization() *Organization {
	o := &Organization{
		ID:    deref(in.ID),
		Name:  deref(in.Name),
		Email: deref(in.Email),
		Slug:  deref(in.Slug),
	}
	if in.CreatedAt != nil {
		o.CreatedAt = *in.CreatedAt
	}
	if in.UpdatedAt != nil {
		o.UpdatedAt = *in.UpdatedAt
	}
	return o
}

// UpdateInput is a partial organization. Only non-nil fields are applied.
type UpdateInput struct {
	Name      *string    `json:"name,omitempty" jsonschema:"display name"`
	Email     *string    `json:"email,omitempty" jsonschema:"contact email"`
	Slug      *string    `json:"slug,omitempty" jsonschema:"URL-safe slug"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" jsonschema:"last update time, defaults to now"`
}

// Apply copies the set fields onto o.
func (in *UpdateInput) Apply(o *Organization) {
	if in.Name != nil {
		o.Name = *in.Name
	}
	if in.Email != nil {
		o.Email = *in.Email
	}
	if in.Slug != nil {
		o.Slug = *in.Slug
	}
	if in.UpdatedAt != nil {
		o.UpdatedAt = *in.UpdatedAt
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
