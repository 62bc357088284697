package cmd

import (
	"github.com/dorascope/dorascope/core"
	"github.com/dorascope/dorascope/internal/contract"
	"github.com/spf13/cobra"
)

// overviewCmd aggregates metrics across repositories.
var overviewCmd = &cobra.Command{
	Use:   "overview [owner/name...]",
	Short: "Summarize DORA metrics across many repositories.",
	Long: `Aggregate DORA metrics across repositories into a single fleet view.

Shows one row per repository plus an overall row that averages every
metric, weighted equally. Helps you:
- Compare delivery performance across teams
- Spot the repositories dragging the fleet down
- Track organization-wide averages over time
- Report a single number to leadership

With --from-history the overview is built from stored runs instead of
live GitHub fetches, which is instant and works offline.

Examples:
  # Live overview of three repositories
  dorascope overview acme/checkout acme/billing acme/search

  # Offline overview from recorded runs
  dorascope overview --from-history

  # Fleet view as JSON for dashboards
  dorascope overview acme/checkout acme/billing --output json`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		provider, err := buildProvider()
		if err != nil {
			contract.LogFatal("Cannot build event provider", err)
		}
		if err := core.ExecuteOverview(rootCtx, cfg, provider, historyManager); err != nil {
			contract.LogFatal("Cannot run overview", err)
		}
	},
}
