// Package dbtest starts a throwaway Postgres for repository tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	database "github.com/sebuszqo/BourseDashboard/internal/db"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NewPostgres returns a migrated database backed by a Postgres container.
// The test is skipped in -short mode or when no container runtime is reachable.
func NewPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:16-alpine"),
		postgres.WithDatabase("bourse"),
		postgres.WithUsername("bourse"),
		postgres.WithPassword("bourse"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := ctr.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a bare user row and returns its id.
func CreateUser(t *testing.T, db *sql.DB, login string) string {
	t.Helper()
	var id string
	err := db.QueryRow(`
		INSERT INTO users (email, login, password_hash, hash_token)
		VALUES ($1, $2, 'hash', 'token')
		RETURNING id`, login+"@example.com", login).Scan(&id)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}
