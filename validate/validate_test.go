package validate_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/enum"
	"github.com/xraph/binspire/issue"
	"github.com/xraph/binspire/user"
	"github.com/xraph/binspire/validate"
)

func issuesOf(t *testing.T, err error) []validate.Issue {
	t.Helper()
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	return verr.Issues
}

func TestDecodeIDInput(t *testing.T) {
	in, err := validate.Decode[validate.IDInput](json.RawMessage(`{"id":"audit_123"}`))
	require.NoError(t, err)
	assert.Equal(t, "audit_123", *in.ID)

	_, err = validate.Decode[validate.IDInput](json.RawMessage(`{"id":""}`))
	issues := issuesOf(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, validate.Issue{Field: "id", Reason: "ID cannot be empty"}, issues[0])

	_, err = validate.Decode[validate.IDInput](nil)
	issues = issuesOf(t, err)
	assert.Equal(t, "Required", issues[0].Reason)

	_, err = validate.Decode[validate.IDInput](json.RawMessage(`{"id":42}`))
	issues = issuesOf(t, err)
	assert.Equal(t, "id", issues[0].Field)
	assert.Contains(t, issues[0].Reason, "Expected string")
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := validate.Decode[validate.IDInput](json.RawMessage(`{"id":"x","extra":true}`))
	issues := issuesOf(t, err)
	assert.Equal(t, validate.Issue{Field: "extra", Reason: "Unrecognized key"}, issues[0])

	_, err = validate.Decode[validate.UpdateRequest[audit.UpdateInput]](
		json.RawMessage(`{"id":"x","data":{"title":"t","createdAt":"2025-01-01T00:00:00Z"}}`))
	issues = issuesOf(t, err)
	assert.Equal(t, "data.createdAt", issues[0].Field)

	_, err = validate.Decode[validate.UpdateRequest[audit.UpdateInput]](
		json.RawMessage(`{"id":"x","data":{"title":"t","nope":1}}`))
	issues = issuesOf(t, err)
	assert.Equal(t, validate.Issue{Field: "data.nope", Reason: "Unrecognized key"}, issues[0])
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	_, err := validate.Decode[validate.IDInput](json.RawMessage(`{"id":"x"} {}`))
	assert.True(t, validate.IsValidation(err))
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := validate.Decode[validate.IDInput](json.RawMessage(`{"id":`))
	assert.True(t, validate.IsValidation(err))
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantLimit  int
		wantOffset int
		wantErr    string
	}{
		{name: "defaults", raw: `{}`, wantLimit: 10, wantOffset: 10},
		{name: "null", raw: `null`, wantLimit: 10, wantOffset: 10},
		{name: "explicit", raw: `{"limit":5,"offset":1}`, wantLimit: 5, wantOffset: 1},
		{name: "max limit", raw: `{"limit":100}`, wantLimit: 100, wantOffset: 10},
		{name: "limit too small", raw: `{"limit":0}`, wantErr: "Number must be greater than or equal to 1"},
		{name: "limit too large", raw: `{"limit":101}`, wantErr: "Number must be less than or equal to 100"},
		{name: "offset zero", raw: `{"offset":0}`, wantErr: "Number must be greater than or equal to 1"},
		{name: "non integer", raw: `{"limit":2.5}`, wantErr: "Expected integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := validate.Decode[validate.Pagination](json.RawMessage(tt.raw))
			if tt.wantErr != "" {
				issues := issuesOf(t, err)
				assert.Contains(t, issues[0].Reason, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, p.LimitOrDefault())
			assert.Equal(t, tt.wantOffset, p.OffsetOrDefault())
		})
	}
}

func TestDecodeCreateAudit(t *testing.T) {
	raw := json.RawMessage(`{
		"userId": "user_1",
		"orgId": "org_1",
		"title": "signed in",
		"entity": "authentication",
		"action": "login"
	}`)
	in, err := validate.Decode[audit.CreateInput](raw)
	require.NoError(t, err)

	a := in.Audit()
	assert.Equal(t, enum.EntityAuthentication, a.Entity)
	assert.Equal(t, enum.ActionLogin, a.Action)
	assert.Equal(t, audit.DefaultChanges(), a.Changes)
}

func TestDecodeCreateAuditInvalid(t *testing.T) {
	raw := json.RawMessage(`{"userId":"user_1","orgId":"org_1","title":"x","entity":"nowhere","action":"login"}`)
	_, err := validate.Decode[audit.CreateInput](raw)
	issues := issuesOf(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "entity", issues[0].Field)
	assert.Contains(t, issues[0].Reason, "'authentication'")
	assert.Contains(t, issues[0].Reason, "received 'nowhere'")

	_, err = validate.Decode[audit.CreateInput](json.RawMessage(`{}`))
	issues = issuesOf(t, err)
	fields := make([]string, len(issues))
	for i, is := range issues {
		fields[i] = is.Field
	}
	assert.ElementsMatch(t, []string{"userId", "orgId", "title", "entity", "action"}, fields)
}

func TestDecodeCreateIssueDefaults(t *testing.T) {
	raw := json.RawMessage(`{"userId":"u","orgId":"o","title":"t","description":"d","entity":"issueManagement"}`)
	in, err := validate.Decode[issue.CreateInput](raw)
	require.NoError(t, err)

	i := in.Issue()
	assert.Equal(t, enum.PriorityMedium, i.Priority)
	assert.Equal(t, enum.StatusOpen, i.Status)

	_, err = validate.Decode[issue.CreateInput](json.RawMessage(
		`{"userId":"u","orgId":"o","title":"t","description":"d","entity":"issueManagement","priority":"urgent"}`))
	issues := issuesOf(t, err)
	assert.Equal(t, "priority", issues[0].Field)
}

func TestDecodeCreateUserFalseIsPresent(t *testing.T) {
	raw := json.RawMessage(`{"orgId":"o","name":"Ada","email":"ada@example.com","emailVerified":false}`)
	in, err := validate.Decode[user.CreateInput](raw)
	require.NoError(t, err)
	assert.False(t, in.User().EmailVerified)

	_, err = validate.Decode[user.CreateInput](json.RawMessage(`{"orgId":"o","name":"Ada","email":"ada@example.com"}`))
	issues := issuesOf(t, err)
	assert.Equal(t, "emailVerified", issues[0].Field)
}

func TestDecodeUpdateRequest(t *testing.T) {
	req, err := validate.Decode[validate.UpdateRequest[issue.UpdateInput]](
		json.RawMessage(`{"id":"issue_1","data":{"status":"resolved"}}`))
	require.NoError(t, err)
	assert.Equal(t, "issue_1", *req.ID)
	require.NotNil(t, req.Data.Status)
	assert.Equal(t, enum.StatusResolved, *req.Data.Status)
	assert.Nil(t, req.Data.Title)

	_, err = validate.Decode[validate.UpdateRequest[issue.UpdateInput]](
		json.RawMessage(`{"id":"issue_1","data":{"status":"archived"}}`))
	issues := issuesOf(t, err)
	assert.Equal(t, "data.status", issues[0].Field)

	_, err = validate.Decode[validate.UpdateRequest[issue.UpdateInput]](json.RawMessage(`{"id":"issue_1"}`))
	issues = issuesOf(t, err)
	assert.Equal(t, validate.Issue{Field: "data", Reason: "Required"}, issues[0])
}

func TestErrorString(t *testing.T) {
	err := &validate.Error{Issues: []validate.Issue{
		{Field: "id", Reason: "ID cannot be empty"},
		{Reason: "invalid JSON"},
	}}
	assert.Equal(t, "id: ID cannot be empty; invalid JSON", err.Error())
}
