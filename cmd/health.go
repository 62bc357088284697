package cmd

import (
	"github.com/dorascope/dorascope/core"
	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/internal/notify"
	"github.com/spf13/cobra"
)

// healthCmd focused on CI/CD policy enforcement.
var healthCmd = &cobra.Command{
	Use:   "health [owner/name...]",
	Short: "Evaluate delivery health against thresholds (fails build on violations)",
	Long: `Classify every metric as good, warning or critical and enforce a health gate.

Designed for CI/CD integration - exits non-zero when overall health reaches
the --fail-on status. Each repository gets a per-metric verdict against
configurable thresholds; the worst verdict wins overall.

Default thresholds (good/warning):
- Lead time:           24h / 168h
- Change failure rate: 15% / 30%
- Time to recovery:     1h / 24h
- Cycle time:          24h / 72h

Use cases:
- Scheduled delivery health checks that page via webhook
- Release gates - block deploy trains when recovery time degrades
- Keep failure rates inside an agreed error budget

Examples:
  # Gate a pipeline on critical health
  dorascope health acme/checkout --fail-on critical

  # Stricter gate with custom thresholds
  dorascope health acme/checkout --fail-on warning --thresholds-override "lead:12:48,cfr:10:20"

  # Page the team channel when a repository degrades
  dorascope health acme/checkout --webhook-url "$SLACK_WEBHOOK" --webhook-type slack`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		provider, err := buildProvider()
		if err != nil {
			contract.LogFatal("Cannot build event provider", err)
		}
		// Gate evaluation happens in ExecuteHealth
		if err := core.ExecuteHealth(rootCtx, cfg, provider, historyManager, notify.NewNotifier(cfg)); err != nil {
			contract.LogFatal("Health gate failed", err)
		}
	},
}
