package cmd

import (
	"github.com/dorascope/dorascope/core"
	"github.com/dorascope/dorascope/internal/contract"
	"github.com/spf13/cobra"
)

// trendsCmd tracks metric movement across ISO weeks.
var trendsCmd = &cobra.Command{
	Use:   "trends [owner/name...]",
	Short: "Track how DORA metrics change week over week",
	Long: `Break the reporting window into ISO weeks and show how each metric moved.

Shows per-week deployment totals, failure rates, lead and recovery times
with a percentage change column against the previous week, helping you:
- Catch delivery slowdowns before they become quarters
- Validate that a process change actually improved throughput
- Watch failure rates trend after an incident
- Build a weekly rhythm around delivery review

Weeks are ISO 8601 weeks starting Monday. When history tracking is
enabled, stored runs are used before falling back to live collection.

Examples:
  # Last 8 weeks (the default) for one repository
  dorascope trends acme/checkout

  # A quarter of weekly movement
  dorascope trends acme/checkout --weeks 13

  # Weekly trend as JSON for plotting
  dorascope trends acme/checkout --weeks 12 --output json`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		provider, err := buildProvider()
		if err != nil {
			contract.LogFatal("Cannot build event provider", err)
		}
		if err := core.ExecuteTrends(rootCtx, cfg, provider, historyManager); err != nil {
			contract.LogFatal("Cannot run trend analysis", err)
		}
	},
}
