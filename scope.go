package binspire

import (
	"context"

	"github.com/xraph/forge"
)

// scopedOrgID extracts the organization scope from forge.Scope or a
// standalone context. An empty result means the call is unscoped.
func scopedOrgID(ctx context.Context) string {
	if s, ok := forge.ScopeFrom(ctx); ok && s.OrgID() != "" {
		return s.OrgID()
	}
	return orgIDFromContext(ctx)
}

// scopeFilter returns orgID unless it is empty, in which case the scope of
// ctx applies.
func scopeFilter(ctx context.Context, orgID string) string {
	if orgID != "" {
		return orgID
	}
	return scopedOrgID(ctx)
}
