package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/internal/parquet"
	"github.com/dorascope/dorascope/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintReportResults outputs the report, dispatching based on the output format configured.
func PrintReportResults(result *schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printReportJSON(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printReportCSV(result, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printReportParquet(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTables(w, result, cfg, fmtFloat, intFmt, duration)
		}, "Wrote report table")
	}
	return nil
}

// printReportJSON handles opening the file and calling the JSON writer.
func printReportJSON(result *schema.ReportResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForReport(w, result)
	}, "Wrote JSON report")
}

// printReportCSV handles opening the file and calling the CSV writer.
func printReportCSV(result *schema.ReportResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForReport(csvWriter, result, fmtFloat, intFmt)
	}, "Wrote CSV report")
}

// printReportParquet writes the composed metric records to a Parquet file.
// Parquet is a binary format, so it always requires an explicit output file.
func printReportParquet(result *schema.ReportResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}

	records := make([]schema.DevOpsMetrics, 0, len(result.Reports))
	for i := range result.Reports {
		records = append(records, result.Reports[i].Metrics)
	}
	if err := parquet.WriteMetricRowsParquet(parquet.ConvertMetricRecords(records), cfg.OutputFile); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet report to %s\n", cfg.OutputFile)
	return nil
}

// writeReportTables generates and writes one human-readable table per repository.
func writeReportTables(w io.Writer, result *schema.ReportResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	maxRepoWidth := GetMaxTableRepoWidth(cfg)

	for i := range result.Reports {
		report := &result.Reports[i]
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Repository: %s\n", contract.TruncateRepo(report.Metrics.Repository, maxRepoWidth)); err != nil {
			return err
		}
		if err := writeRepositoryTable(w, report, cfg, fmtFloat, intFmt); err != nil {
			return err
		}
		if cfg.Detail && report.Stats != nil {
			if err := writeStatsTable(w, report.Stats, fmtFloat, intFmt); err != nil {
				return err
			}
		}
		counts := report.Counts
		if _, err := fmt.Fprintf(w, "Events: %d pull requests, %d deployments, %d workflow runs, %d issues (%d closed)\n",
			counts.PullRequests, counts.Deployments, counts.WorkflowRuns, counts.Issues, report.IssuesClosed); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nReport covers %d repositories over %d days, completed in %v with %d workers. History backend: %s\n",
		len(result.Reports), result.PeriodDays, duration, cfg.Workers, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// writeRepositoryTable renders the four key metrics plus cycle time for one
// repository, one row per metric.
func writeRepositoryTable(w io.Writer, report *schema.RepositoryReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	table.Header([]string{"Metric", "Value", "Tier"})

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	metrics := &report.Metrics

	// 3. Populate Rows
	data := [][]string{
		{
			"Deployment Frequency",
			fmt.Sprintf(intFmt, metrics.DeploymentCount) + " (" + string(metrics.DeploymentFrequency) + ")",
			tierLabel(report.Tiers.DeploymentFrequency, cfg.UseColors),
		},
		{
			metricDisplayName(schema.LeadTimeMetric),
			fmtFloat(metrics.LeadTimeForChangesHours) + "h",
			tierLabel(report.Tiers.LeadTime, cfg.UseColors),
		},
		{
			metricDisplayName(schema.FailureRateMetric),
			fmt.Sprintf("%s%% (%d/%d)", fmtFloat(metrics.ChangeFailureRate), metrics.FailedDeployments, metrics.TotalDeployments),
			tierLabel(report.Tiers.ChangeFailureRate, cfg.UseColors),
		},
		{
			metricDisplayName(schema.RecoveryMetric),
			formatNullable(metrics.MeanTimeToRecoveryHours, fmtFloat, "h"),
			tierLabel(report.Tiers.TimeToRecovery, cfg.UseColors),
		},
		{
			metricDisplayName(schema.CycleTimeMetric),
			formatNullable(metrics.CycleTimeHours, fmtFloat, "h"),
			noSignalCell, // No industry tier exists for cycle time
		},
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeStatsTable renders the secondary pull request indicators collected in
// detail mode.
func writeStatsTable(w io.Writer, stats *schema.PullRequestStats, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"PR Metric", "Value"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{
		{"Merged PRs", fmt.Sprintf(intFmt, stats.MergedPRCount)},
		{"Cycle Time", formatNullable(stats.CycleTimeHours, fmtFloat, "h")},
		{"Coding Time", formatNullable(stats.CodingTimeHours, fmtFloat, "h")},
		{"Review Latency", formatNullable(stats.ReviewLatencyHours, fmtFloat, "h")},
		{"Rework Rate", formatNullable(stats.ReworkRatePercent, fmtFloat, "%")},
		{"Avg PR Size", formatNullable(stats.AvgPRSizeLines, fmtFloat, " lines")},
		{"Median PR Size", formatNullable(stats.MedianPRSizeLines, fmtFloat, " lines")},
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
