//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDorascopeWithMySQL tests the dorascope CLI with a MySQL history backend.
func TestDorascopeWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "dorascope",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/dorascope?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("DORASCOPE_HISTORY_BACKEND", "mysql")
	_ = os.Setenv("DORASCOPE_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("DORASCOPE_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("DORASCOPE_HISTORY_DB_CONNECT") }()

	runHistoryRoundTrip(t)
}

// TestDorascopeWithPostgres tests the dorascope CLI with a PostgreSQL history backend.
func TestDorascopeWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("DORASCOPE_HISTORY_BACKEND", "postgresql")
	_ = os.Setenv("DORASCOPE_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("DORASCOPE_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("DORASCOPE_HISTORY_DB_CONNECT") }()

	runHistoryRoundTrip(t)
}

// runHistoryRoundTrip exercises the full history lifecycle against whichever
// backend the environment selects. The report populates the store, and the
// remaining commands read it back out.
func runHistoryRoundTrip(t *testing.T) {
	t.Helper()

	// Run dorascope history clear
	_, err := runDorascope(t, "history", "clear")
	require.NoError(t, err)

	// Run dorascope report against the fixture, persisting metrics
	_, err = runDorascope(t, "report", "acme/checkout",
		"--events-file", "integration/testdata/events.json",
		"--date", "2026-08-01", "--period", "30",
		"--emoji", "no", "--color", "no")
	require.NoError(t, err)

	// Run dorascope history status
	_, err = runDorascope(t, "history", "status")
	require.NoError(t, err)

	// Run dorascope overview from stored history
	output, err := runDorascope(t, "overview", "acme/checkout",
		"--from-history", "--emoji", "no", "--color", "no")
	require.NoError(t, err)
	require.Contains(t, output, "acme/checkout")

	// Run dorascope history export
	exportPath := filepath.Join(t.TempDir(), "history.parquet")
	_, err = runDorascope(t, "history", "export", "--output-file", exportPath)
	require.NoError(t, err)
	_, err = os.Stat(exportPath)
	require.NoError(t, err)
}
