package enum_test

import (
	"testing"

	"github.com/xraph/binspire/enum"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
		got   bool
	}{
		{"entity authentication", true, enum.SystemEntity("authentication").IsValid()},
		{"entity wrong case", false, enum.SystemEntity("Authentication").IsValid()},
		{"entity empty", false, enum.SystemEntity("").IsValid()},
		{"action login", true, enum.AuditAction("login").IsValid()},
		{"action approve_request", true, enum.AuditAction("approve_request").IsValid()},
		{"action unknown", false, enum.AuditAction("erase").IsValid()},
		{"status in_progress", true, enum.IssueStatus("in_progress").IsValid()},
		{"status archived", false, enum.IssueStatus("archived").IsValid()},
		{"priority critical", true, enum.Priority("critical").IsValid()},
		{"priority urgent", false, enum.Priority("urgent").IsValid()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.valid {
				t.Errorf("expected valid=%v, got %v", tt.valid, tt.got)
			}
		})
	}
}

func TestValueSets(t *testing.T) {
	if n := len(enum.SystemEntities()); n != 15 {
		t.Errorf("expected 15 system entities, got %d", n)
	}
	if n := len(enum.AuditActions()); n != 12 {
		t.Errorf("expected 12 audit actions, got %d", n)
	}
	if n := len(enum.IssueStatuses()); n != 4 {
		t.Errorf("expected 4 issue statuses, got %d", n)
	}
	if n := len(enum.Priorities()); n != 4 {
		t.Errorf("expected 4 priorities, got %d", n)
	}

	// Returned slices are copies.
	s := enum.Priorities()
	s[0] = "mutated"
	if enum.Priorities()[0] != enum.PriorityLow {
		t.Error("Priorities returned shared backing array")
	}
}
