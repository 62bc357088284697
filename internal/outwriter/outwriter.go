// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints per-repository metric reports using the configured output format.
func (ow *OutWriter) WriteReport(result *schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	return PrintReportResults(result, cfg, duration)
}

// WriteOverview prints the multi-repository summary using the configured output format.
func (ow *OutWriter) WriteOverview(result schema.MultiRepoSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintOverviewResults(result, cfg, duration)
}

// WriteTrends prints weekly trend results using the configured output format.
func (ow *OutWriter) WriteTrends(result schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	return PrintTrendsResults(result, cfg, duration)
}

// WriteHealth prints health evaluation results using the configured output format.
func (ow *OutWriter) WriteHealth(result schema.HealthResult, cfg *contract.Config, duration time.Duration) error {
	return PrintHealthResults(result, cfg, duration)
}

// WriteBenchmarks prints the benchmark tier definitions using the configured output format.
func (ow *OutWriter) WriteBenchmarks(thresholds map[schema.MetricKey]schema.Threshold, cfg *contract.Config) error {
	return PrintBenchmarkDefinitions(thresholds, cfg)
}

// GetMaxTableRepoWidth calculates the maximum width for repository slugs in
// table output based on terminal width and table configuration.
func GetMaxTableRepoWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the metric columns with borders and padding
	baseWidth := 50

	// Calculate available space for the repository slug
	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable slug width
		return 12
	}
	if available > 60 {
		// Maximum slug width to prevent overly wide tables
		return 60
	}
	return available
}
