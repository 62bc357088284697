package cmd

import (
	"github.com/dorascope/dorascope/core"
	"github.com/dorascope/dorascope/internal/contract"
	"github.com/spf13/cobra"
)

// benchmarksCmd displays the formal definitions of all metrics and tiers.
var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Display DORA benchmark tiers and the active health thresholds",
	Long: `Show how every metric is defined, measured and classified.

Provides complete transparency into the scoring, including:
- What each of the four DORA metrics measures
- The elite/high/medium/low benchmark boundaries
- The good/warning health thresholds currently in effect
- Custom thresholds if configured via .dorascope.yaml

No GitHub collection is performed - this is purely informational.

Use this to:
- Explain the tiers to your team
- Validate custom threshold configurations
- Document how reports are scored

Examples:
  # Show benchmark definitions
  dorascope benchmarks

  # View with custom thresholds from config file
  dorascope benchmarks --config .dorascope.yaml`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBenchmarks(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display benchmarks", err)
		}
	},
}
