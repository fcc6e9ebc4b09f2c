package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xraph/binspire"
	"github.com/xraph/binspire/store/memory"
	"github.com/xraph/binspire/store/storetest"
)

// countUsers answers with the number of users visible to the request.
func countUsers(t *testing.T, eng *binspire.Engine) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		users, err := eng.ListUsers(r.Context(), nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, len(users))
	})
}

func newEngine(t *testing.T) (*binspire.Engine, string) {
	t.Helper()
	s := memory.New()
	org, _ := storetest.Seed(t, s)
	storetest.Seed(t, s)
	eng, err := binspire.NewEngine(binspire.WithStore(s))
	if err != nil {
		t.Fatal(err)
	}
	return eng, org.ID
}

func TestOrganization(t *testing.T) {
	eng, orgID := newEngine(t)
	h := Organization(countUsers(t, eng))

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"unscoped", "", "2"},
		{"scoped", orgID, "1"},
		{"unknown organization", "org_missing", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
			if tt.header != "" {
				req.Header.Set(OrganizationHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Body.String() != tt.want {
				t.Fatalf("expected %s users, got %q", tt.want, rec.Body.String())
			}
		})
	}
}

func TestRequireOrganization(t *testing.T) {
	eng, orgID := newEngine(t)
	h := RequireOrganization(countUsers(t, eng))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without scope, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	req.Header.Set(OrganizationHeader, orgID)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "1" {
		t.Fatalf("expected 200 with one user, got %d %q", rec.Code, rec.Body.String())
	}
}
