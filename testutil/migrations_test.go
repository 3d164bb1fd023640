package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitas/admin-gateway/migrations"
	"github.com/communitas/admin-gateway/testutil"
)

// TestMigrations is an integration test that verifies the full migration
// round-trip against a real Postgres database:
//
//  1. Apply all migrations (goose up).
//  2. Assert every reference table exists and the seed landed.
//  3. Roll back all migrations (goose reset).
//  4. Assert every table has been removed.
//
// The test is skipped automatically when TEST_DATABASE_URL is not set.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Another package's TestMain may have already applied migrations against
	// this shared test DB. Reset to version 0 first so this test is
	// self-contained and order-independent.
	if _, err := provider.DownTo(ctx, 0); err != nil {
		t.Fatalf("TestMigrations: initial reset: %v", err)
	}

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")

	for _, table := range []string{"countries", "states", "cities"} {
		assert.True(t, tableExists(t, db, table), "table %s should exist after up", table)
	}

	// The seed migration must leave at least one country behind.
	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM countries").Scan(&n))
	assert.Positive(t, n, "countries table should be seeded")

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose reset")

	for _, table := range []string{"countries", "states", "cities"} {
		assert.False(t, tableExists(t, db, table), "table %s should be gone after reset", table)
	}
}

// tableExists reports whether a table with the given name exists in the
// public schema of the connected database.
func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`, name).Scan(&exists)
	require.NoError(t, err)
	return exists
}
