package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/binspire/audit"
	"github.com/xraph/binspire/issue"
	"github.com/xraph/binspire/validate"
)

func TestSchemaPagination(t *testing.T) {
	s, err := validate.Schema[validate.Pagination]()
	require.NoError(t, err)

	assert.Equal(t, "object", s.Type)
	assert.Empty(t, s.Required)

	limit := s.Properties["limit"]
	require.NotNil(t, limit)
	assert.Equal(t, "integer", limit.Type)
	assert.Nil(t, limit.Types)
	require.NotNil(t, limit.Minimum)
	require.NotNil(t, limit.Maximum)
	assert.Equal(t, 1.0, *limit.Minimum)
	assert.Equal(t, 100.0, *limit.Maximum)
	assert.JSONEq(t, `10`, string(limit.Default))

	offset := s.Properties["offset"]
	require.NotNil(t, offset)
	assert.Equal(t, 1.0, *offset.Minimum)
	assert.JSONEq(t, `10`, string(offset.Default))
}

func TestSchemaCreateAudit(t *testing.T) {
	s, err := validate.Schema[audit.CreateInput]()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"userId", "orgId", "title", "entity", "action"}, s.Required)

	entity := s.Properties["entity"]
	require.NotNil(t, entity)
	assert.Equal(t, "string", entity.Type)
	assert.Len(t, entity.Enum, 15)
	assert.Contains(t, entity.Enum, "authentication")

	action := s.Properties["action"]
	require.NotNil(t, action)
	assert.Len(t, action.Enum, 12)

	createdAt := s.Properties["createdAt"]
	require.NotNil(t, createdAt)
	assert.Equal(t, "string", createdAt.Type)
}

func TestSchemaUpdateRequest(t *testing.T) {
	s, err := validate.Schema[validate.UpdateRequest[issue.UpdateInput]]()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"id", "data"}, s.Required)
	data := s.Properties["data"]
	require.NotNil(t, data)
	assert.Equal(t, "object", data.Type)
	assert.Empty(t, data.Required)
	assert.NotContains(t, data.Properties, "createdAt")

	status := data.Properties["status"]
	require.NotNil(t, status)
	assert.Len(t, status.Enum, 4)
}

func TestSchemaEmpty(t *testing.T) {
	s := validate.MustSchema[validate.Empty]()
	assert.Equal(t, "object", s.Type)
}
