// Package cmd defines the command-line interface for dorascope.
package cmd

import (
	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(benchmarksCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("api-base-url", "", "GitHub API base URL for GitHub Enterprise (defaults to github.com)")
	rootCmd.PersistentFlags().String("base-branches", "main,master", "Comma-separated list of base branches pull requests must target")
	rootCmd.PersistentFlags().String("date", "", "Report end date in YYYY-MM-DD, ISO8601 or time ago")
	rootCmd.PersistentFlags().Bool("detail", false, "Collect per-PR metadata (reviews, churn) and print extended stats")
	rootCmd.PersistentFlags().String("environment", "", "Only count deployments targeting this environment")
	rootCmd.PersistentFlags().String("events-file", "", "Read delivery events from a JSON file instead of the GitHub API")
	rootCmd.PersistentFlags().String("exclude-labels", "", "Comma-separated list of PR/issue labels to ignore")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().IntP("period", "p", contract.DefaultPeriodDays, "Reporting window in days")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().StringP("repos", "r", "", "Comma-separated list of repositories in owner/name format")
	rootCmd.PersistentFlags().String("token", "", "GitHub token (prefer the DORASCOPE_TOKEN env variable)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of overviewCmd to Viper
	overviewCmd.Flags().Bool("from-history", false, "Build the overview from stored history instead of fetching live events")
	if err := viper.BindPFlags(overviewCmd.Flags()); err != nil {
		contract.LogFatal("Error binding overview flags", err)
	}

	// Bind all flags of trendsCmd to Viper
	trendsCmd.Flags().Int("weeks", 0, "Number of ISO weeks to cover (0 = default of 8)")
	if err := viper.BindPFlags(trendsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trends flags", err)
	}

	// Bind all flags of healthCmd to Viper
	healthCmd.Flags().String("fail-on", string(schema.CriticalStatus), "Exit non-zero when overall health reaches this status (warning or critical)")
	healthCmd.Flags().String("thresholds-override", "", "Health thresholds for CI/CD gating (format: 'lead:24:168,cfr:15:30,mttr:1:24,cycle:24:72')")
	healthCmd.Flags().String("webhook-url", "", "Webhook URL notified when any repository degrades")
	healthCmd.Flags().String("webhook-type", contract.WebhookSlack, "Webhook payload style: slack or teams or http")
	if err := viper.BindPFlags(healthCmd.Flags()); err != nil {
		contract.LogFatal("Error binding health flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("serve-addr", ":8600", "Listen address for the HTTP API")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
