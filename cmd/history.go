package cmd

import (
	"fmt"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/internal/iostore"
	"github.com/dorascope/dorascope/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")
	output := schema.OutputMode(viper.GetString("output"))

	// Initialize stores with the loaded config
	if err := iostore.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = outputFile
	cfg.Output = output

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = iostore.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on metric history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by reporting commands. This avoids GitHub credentials
// and complex config processing for simple history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage stored metric history and exports",
	Long: `Manage the historical metric store that powers overviews and trends.

When enabled, dorascope records every report run, storing one row per
repository and report date:
- The four DORA metrics plus cycle time
- Deployment and failure counts
- The frequency class the row was computed over

This enables offline overviews, week-over-week trends and data export
for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history store statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all stored metrics
  migrate - Run database schema migrations

Examples:
  # Check history status
  dorascope history status

  # Export for analysis in pandas/DuckDB
  dorascope history export --output-file dora-history.parquet`,
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored metric history",
	Long: `Delete every stored metric row from the configured backend.

WARNING: This action cannot be undone. Consider exporting data first.

Use this when:
- Resetting trend tracking
- Metrics were recorded against the wrong repositories
- Starting fresh after changing collection filters

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the metrics table

Examples:
  # Export before clearing
  dorascope history export --output-file backup.parquet
  dorascope history clear

  # Clear a MySQL-backed store
  DORASCOPE_HISTORY_BACKEND=mysql DORASCOPE_HISTORY_DB_CONNECT="..." dorascope history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearHistory(cfg.HistoryBackend, iostore.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history store statistics and connection details",
	Long: `Show detailed information about the metric history store.

Displays:
- Backend type and connection status
- Total number of metric rows stored
- Repositories tracked and weeks covered
- Newest and oldest recorded runs

Use this to:
- Verify history tracking is enabled and working
- Monitor data accumulation over time
- Check database connection health

Examples:
  # Check history status
  dorascope history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iostore.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iostore.PrintHistoryStatus(status)
	},
}

// historyExportCmd exports metric history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored metrics for BI tools and analytics",
	Long: `Export all stored metric rows for use with analytics tools.

The default format is Parquet, which enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Pass --output csv or --output json for plain-text exports.

Requires: --output-file parameter

Use cases:
- Long-range trend analysis beyond the trends command
- Custom dashboards and visualizations
- Executive reporting and KPIs

Examples:
  # Export all data
  dorascope history export --output-file dora-history.parquet

  # Export a plain CSV instead
  dorascope history export --output csv --output-file dora-history.csv

  # Use with DuckDB for analysis
  dorascope history export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteHistoryExport(cfg.OutputFile, cfg.Output); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the metric history store.

Migrations allow:
- Upgrading to new schema versions when dorascope is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  dorascope history migrate

  # Migrate to specific version
  dorascope history migrate --target-version 1

  # Rollback to initial state
  dorascope history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
