// Package middleware provides HTTP middleware that scopes Binspire requests
// to an organization.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/xraph/forge"

	"github.com/xraph/binspire"
)

// OrganizationHeader carries the organization a request is scoped to.
const OrganizationHeader = "X-Organization-ID"

// Organization scopes each request to the organization named in the
// OrganizationHeader header. List operations behind it only return rows of
// that organization. Requests without the header pass through unscoped.
func Organization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orgID := strings.TrimSpace(r.Header.Get(OrganizationHeader))
		if orgID == "" {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(binspire.WithOrganization(r.Context(), orgID)))
	})
}

// RequireOrganization rejects requests that are not scoped to an
// organization, either by the OrganizationHeader header or by a Forge scope.
func RequireOrganization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !scoped(r) {
			denyResponse(w)
			return
		}
		Organization(next).ServeHTTP(w, r)
	})
}

func scoped(r *http.Request) bool {
	if strings.TrimSpace(r.Header.Get(OrganizationHeader)) != "" {
		return true
	}
	if s, ok := forge.ScopeFrom(r.Context()); ok && s.OrgID() != "" {
		return true
	}
	return false
}

func denyResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "organization scope required"})
}
