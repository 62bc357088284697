package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
)

// writeJSONResultsForReport marshals the schema.ReportResult to JSON and writes it.
func writeJSONResultsForReport(w io.Writer, result *schema.ReportResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForReport writes one flat CSV row per repository report.
func writeCSVResultsForReport(w *csv.Writer, result *schema.ReportResult, fmtFloat func(float64) string, intFmt string) error {
	// 1. Write Header Row
	header := []string{
		"repository",
		"date",
		"period_days",
		"deployment_count",
		"deployment_frequency",
		"deployment_tier",
		"lead_time_hours",
		"lead_time_tier",
		"total_deployments",
		"failed_deployments",
		"change_failure_rate",
		"change_failure_tier",
		"mttr_hours",
		"mttr_tier",
		"cycle_time_hours",
		"pull_requests",
		"deployment_events",
		"workflow_runs",
		"issues",
		"issues_closed",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for i := range result.Reports {
		report := &result.Reports[i]
		metrics := &report.Metrics
		rec := []string{
			metrics.Repository,
			metrics.Date.Format(contract.DateTimeFormat),
			fmt.Sprintf(intFmt, result.PeriodDays),
			fmt.Sprintf(intFmt, metrics.DeploymentCount),
			string(metrics.DeploymentFrequency),
			contract.GetPlainTierLabel(report.Tiers.DeploymentFrequency),
			fmtFloat(metrics.LeadTimeForChangesHours),
			contract.GetPlainTierLabel(report.Tiers.LeadTime),
			fmt.Sprintf(intFmt, metrics.TotalDeployments),
			fmt.Sprintf(intFmt, metrics.FailedDeployments),
			fmtFloat(metrics.ChangeFailureRate),
			contract.GetPlainTierLabel(report.Tiers.ChangeFailureRate),
			formatNullable(metrics.MeanTimeToRecoveryHours, fmtFloat, ""),
			contract.GetPlainTierLabel(report.Tiers.TimeToRecovery),
			formatNullable(metrics.CycleTimeHours, fmtFloat, ""),
			fmt.Sprintf(intFmt, report.Counts.PullRequests),
			fmt.Sprintf(intFmt, report.Counts.Deployments),
			fmt.Sprintf(intFmt, report.Counts.WorkflowRuns),
			fmt.Sprintf(intFmt, report.Counts.Issues),
			fmt.Sprintf(intFmt, report.IssuesClosed),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
