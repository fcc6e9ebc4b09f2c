package validate

// Pagination defaults and bounds.
const (
	DefaultLimit  = 10
	MaxLimit      = 100
	DefaultOffset = 10
)

// IDInput identifies a single row.
type IDInput struct {
	ID *string `json:"id" jsonschema:"ID of the row" validate:"required,min=1"`
}

// Pagination selects a page of a list. Offset starts at 1; both fields
// fall back to their defaults when omitted.
type Pagination struct {
	Limit  *int `json:"limit,omitempty" jsonschema:"maximum number of rows to return" validate:"omitnil,min=1,max=100" default:"10"`
	Offset *int `json:"offset,omitempty" jsonschema:"number of rows to skip" validate:"omitnil,min=1" default:"10"`
}

// LimitOrDefault returns the requested limit or DefaultLimit.
func (p *Pagination) LimitOrDefault() int {
	if p == nil || p.Limit == nil {
		return DefaultLimit
	}
	return *p.Limit
}

// OffsetOrDefault returns the requested offset or DefaultOffset.
func (p *Pagination) OffsetOrDefault() int {
	if p == nil || p.Offset == nil {
		return DefaultOffset
	}
	return *p.Offset
}

// Empty is the input of tools that take no arguments.
type Empty struct{}

// UpdateRequest carries the ID of the row to change and the fields to set.
type UpdateRequest[T any] struct {
	ID   *string `json:"id" jsonschema:"ID of the row to update" validate:"required,min=1"`
	Data *T      `json:"data" jsonschema:"fields to change; omitted fields keep their value" validate:"required"`
}
