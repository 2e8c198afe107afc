package migrations_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"fullstack-starter/internal/database"
	"fullstack-starter/internal/migrations"
)

// TestRunnerIntegration applies the committed migrations against a real
// Postgres container and checks the resulting schema.
func TestRunnerIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Postgres integration test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "starter",
				"POSTGRES_PASSWORD": "starter",
				"POSTGRES_DB":       "starter",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Postgres container: %v", err)
	}
	defer pgContainer.Terminate(ctx)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://starter:starter@%s:%s/starter?sslmode=disable", host, port.Port())
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.Eventually(t, func() bool {
		return db.Ping() == nil
	}, 30*time.Second, time.Second, "database never became reachable")

	dir, err := filepath.Abs(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)

	runner := migrations.NewRunner(db, dir)
	defer runner.Close()

	require.NoError(t, runner.Up())

	version, dirty, err := runner.Status()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	for _, table := range []string{"items", "users"} {
		assert.True(t, tableExists(t, db, table), "expected table %q to exist", table)
	}

	columns := tableColumns(t, db, "users")
	assert.ElementsMatch(t, []string{"id", "email", "name", "created_at"}, columns)

	// The database enforces email uniqueness, not application code.
	_, err = db.Exec(`INSERT INTO users (email, name) VALUES ($1, $2)`, "ada@example.com", "Ada")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (email) VALUES ($1)`, "ada@example.com")
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	var createdAt time.Time
	err = db.QueryRow(`SELECT created_at FROM users WHERE email = $1`, "ada@example.com").Scan(&createdAt)
	require.NoError(t, err)
	assert.False(t, createdAt.IsZero(), "created_at should be filled by its default")

	require.NoError(t, runner.Down())
	assert.False(t, tableExists(t, db, "users"))
	assert.False(t, tableExists(t, db, "items"))

	require.NoError(t, runner.Up())
	assert.True(t, tableExists(t, db, "users"))
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1)`,
		name,
	).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func tableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query(
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}
