//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/xraph/binspire/store"
	"github.com/xraph/binspire/store/postgres"
	"github.com/xraph/binspire/store/storetest"
)

func TestConformance(t *testing.T) {
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("binspire"),
		tcpostgres.WithUsername("binspire"),
		tcpostgres.WithPassword("binspire"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatal(err)
	}

	s, err := postgres.Open(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Migrations are idempotent.
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		truncate(t, s)
		return s
	})
}

func truncate(t *testing.T, s *postgres.Store) {
	t.Helper()
	if err := s.Truncate(context.Background()); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}
