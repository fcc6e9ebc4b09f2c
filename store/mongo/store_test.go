package mongo

import (
	"testing"
)

func TestMigrationIndexes(t *testing.T) {
	indexes := migrationIndexes()

	for _, col := range []string{colOrganizations, colUsers, colAudits, colHistories, colIssues} {
		if len(indexes[col]) == 0 {
			t.Errorf("expected indexes for %s", col)
		}
	}

	// Email uniqueness mirrors the relational unique constraints.
	for _, col := range []string{colOrganizations, colUsers} {
		if indexes[col][0].Options == nil {
			t.Errorf("%s: expected unique email index options", col)
		}
	}

	if n := len(indexes[colIssues]); n != len(indexes[colAudits])+1 {
		t.Errorf("expected issues to carry one extra status index, got %d", n)
	}
}
