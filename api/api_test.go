package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/binspire"
	"github.com/xraph/binspire/api"
	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/enum"
	"github.com/xraph/binspire/issue"
	"github.com/xraph/binspire/organization"
	"github.com/xraph/binspire/store/memory"
	"github.com/xraph/binspire/store/storetest"
)

type fixture struct {
	srv    *httptest.Server
	orgID  string
	userID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.New()
	org, u := storetest.Seed(t, s)
	eng, err := binspire.NewEngine(binspire.WithStore(s))
	require.NoError(t, err)

	srv := httptest.NewServer(api.New(eng, nil).Handler())
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, orgID: org.ID, userID: u.ID}
}

func (f *fixture) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, f.srv.URL+path, nil)
	} else {
		req, err = http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	require.NoError(t, err)
	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), "body must hold exactly one JSON document: %s", raw)
	return v
}

func TestOrganizationLifecycle(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/organizations", `{"name":"Acme","email":"ops@acme.test","slug":"acme"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[organization.Organization](t, resp)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Acme", created.Name)

	resp = f.do(t, http.MethodPut, "/v1/organizations/"+created.ID, `{"name":"Acme Corp"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[organization.Organization](t, resp)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.Equal(t, "acme", updated.Slug)

	resp = f.do(t, http.MethodGet, "/v1/organizations?limit=10", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[api.ListResponse[organization.Organization]](t, resp)
	assert.EqualValues(t, 2, list.Total)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, created.ID, list.Items[0].ID)

	resp = f.do(t, http.MethodDelete, "/v1/organizations/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/v1/organizations/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidationIsBadRequest(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/audits", `{"userId":"`+f.userID+`","orgId":"`+f.orgID+`"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/v1/issues?status=someday", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConstraintIsBadRequest(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodDelete, "/v1/organizations/"+f.orgID, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMissingRowsAreNotFound(t *testing.T) {
	f := newFixture(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/v1/audits/audit_missing", ""},
		{http.MethodPut, "/v1/histories/history_missing", `{"title":"x"}`},
		{http.MethodDelete, "/v1/issues/issue_missing", ""},
		{http.MethodGet, "/v1/users/user_missing", ""},
	} {
		resp := f.do(t, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestAuditList(t *testing.T) {
	f := newFixture(t)

	body := `{"userId":"` + f.userID + `","orgId":"` + f.orgID + `","title":"Signed in","entity":"authentication","action":"login"}`
	for range 3 {
		resp := f.do(t, http.MethodPost, "/v1/audits", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := f.do(t, http.MethodGet, "/v1/audits?limit=2&offset=0&userId="+f.userID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[api.ListResponse[audit.Audit]](t, resp)
	assert.EqualValues(t, 3, list.Total)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Limit)
	assert.Equal(t, 0, list.Offset)
}

func TestListWithoutQuery(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/v1/organizations", "/v1/users", "/v1/audits", "/v1/histories", "/v1/issues"} {
		resp := f.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		list := decode[api.ListResponse[json.RawMessage]](t, resp)
		assert.Equal(t, 50, list.Limit, path)
		assert.Equal(t, 0, list.Offset, path)
	}
}

func TestIssueEnums(t *testing.T) {
	f := newFixture(t)

	body := `{"userId":"` + f.userID + `","orgId":"` + f.orgID + `","title":"Bin overflow","description":"Sensor reads 100%","entity":"issueManagement"}`
	resp := f.do(t, http.MethodPost, "/v1/issues", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[issue.Issue](t, resp)
	assert.Equal(t, enum.PriorityMedium, created.Priority)
	assert.Equal(t, enum.StatusOpen, created.Status)

	resp = f.do(t, http.MethodPut, "/v1/issues/"+created.ID, `{"status":"resolved"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[issue.Issue](t, resp)
	assert.Equal(t, enum.StatusResolved, updated.Status)
	assert.Equal(t, created.Title, updated.Title)

	resp = f.do(t, http.MethodPut, "/v1/issues/"+created.ID, `{"status":"someday"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/v1/issues?status=resolved", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[api.ListResponse[issue.Issue]](t, resp)
	assert.EqualValues(t, 1, list.Total)
}

func TestInvalidEnumOnCreate(t *testing.T) {
	f := newFixture(t)

	for _, tc := range []struct{ path, body string }{
		{"/v1/audits", `{"userId":"` + f.userID + `","orgId":"` + f.orgID + `","title":"x","entity":"nowhere","action":"login"}`},
		{"/v1/histories", `{"userId":"` + f.userID + `","orgId":"` + f.orgID + `","title":"x","entity":"nowhere"}`},
	} {
		resp := f.do(t, http.MethodPost, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, tc.path)
	}
}
