package store

import (
	"context"
	"testing"
	"time"

	"shembeldon-league/internal/config"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgImage    = "postgres:16.3-alpine"
	pgDBName   = "league"
	pgUser     = "league"
	pgPassword = "secret"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx, pgImage,
		postgres.WithDatabase(pgDBName),
		postgres.WithUsername(pgUser),
		postgres.WithPassword(pgPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("error starting container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("error terminating container: %v", err)
		}
	})

	// the container is not configured for TLS
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("error getting connection string: %v", err)
	}
	return dsn
}

func TestPostgresStore(t *testing.T) {
	dsn := startPostgres(t)

	s, err := NewPostgresStore(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer s.Close()

	testStoreContract(t, s)

	// Migrations must be idempotent across restarts.
	again, err := NewPostgresStore(dsn)
	if err != nil {
		t.Fatalf("reopen postgres: %v", err)
	}
	defer again.Close()
	if _, err := again.Load(context.Background(), config.DefaultStorageKey); err != nil {
		t.Errorf("load after reopen: %v", err)
	}
}

func TestNewPostgresStoreRequiresDSN(t *testing.T) {
	if _, err := NewPostgresStore(""); err == nil {
		t.Error("expected an error, got nil instead")
	}
}
