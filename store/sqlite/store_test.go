package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xraph/binspire/store"
	"github.com/xraph/binspire/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		ctx := context.Background()
		s, err := Open(ctx, "file:"+filepath.Join(t.TempDir(), "binspire.db"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = s.Close() })
		if err := s.Migrate(ctx); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		return s
	})
}

func TestWithForeignKeys(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"binspire.db", "binspire.db?_pragma=foreign_keys(1)"},
		{"file:binspire.db?cache=shared", "file:binspire.db?cache=shared&_pragma=foreign_keys(1)"},
		{"binspire.db?_pragma=foreign_keys(0)", "binspire.db?_pragma=foreign_keys(0)"},
	}
	for _, tt := range tests {
		if got := withForeignKeys(tt.in); got != tt.want {
			t.Errorf("withForeignKeys(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
