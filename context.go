package binspire

import "context"

type contextKey int

const ctxKeyOrgID contextKey = iota

// WithOrganization returns a context scoped to the given organization.
// Lists run under a scoped context only return rows of that organization.
// Use this for standalone mode (without Forge).
func WithOrganization(ctx context.Context, orgID string) context.Context {
	return context.WithValue(ctx, ctxKeyOrgID, orgID)
}

func orgIDFromContext(ctx context.Context) string {
	v, ok := ctx.Value(ctxKeyOrgID).(string)
	if !ok {
		return ""
	}
	return v
}
