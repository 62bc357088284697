package cmd

import (
	"github.com/dorascope/dorascope/core"
	"github.com/dorascope/dorascope/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd computes the four DORA metrics for one or more repositories.
var reportCmd = &cobra.Command{
	Use:   "report [owner/name...]",
	Short: "Show the four DORA metrics for the selected repositories.",
	Long: `Collect delivery events and compute the four DORA metrics per repository.

For each repository in the reporting window, dorascope derives:
- Deployment frequency - how often changes reach production
- Lead time for changes - hours from merge to deployment
- Change failure rate - share of deployments that fail
- Mean time to recovery - hours to restore after a failure

Each metric is classified against the published DORA benchmarks
(elite, high, medium, low) so teams can see where they stand.

Examples:
  # Report on a single repository for the last 30 days
  dorascope report acme/checkout

  # Report on several repositories over a quarter
  dorascope report acme/checkout acme/billing --period 90

  # Include review and PR size statistics
  dorascope report acme/checkout --detail

  # Export findings to CSV for tracking
  dorascope report acme/checkout --output csv --output-file dora.csv

  # Reproduce a historical report
  dorascope report acme/checkout --date 2026-06-30`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		provider, err := buildProvider()
		if err != nil {
			contract.LogFatal("Cannot build event provider", err)
		}
		if err := core.ExecuteReport(rootCtx, cfg, provider, historyManager); err != nil {
			contract.LogFatal("Cannot run report", err)
		}
	},
}
