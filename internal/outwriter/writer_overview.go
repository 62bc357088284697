package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
)

// writeJSONResultsForOverview marshals the schema.MultiRepoSummary to JSON and writes it.
func writeJSONResultsForOverview(w io.Writer, result schema.MultiRepoSummary) error {
	return writeJSON(w, result)
}

// writeCSVResultsForOverview writes the schema.MultiRepoSummary data to a CSV
// writer. The overall row follows the same display rule as the table and only
// appears with more than one repository.
func writeCSVResultsForOverview(w *csv.Writer, result schema.MultiRepoSummary, fmtFloat func(float64) string, intFmt string) error {
	// 1. Write Header Row
	header := []string{
		"repository",
		"data_points",
		"avg_deployment_count",
		"avg_lead_time_hours",
		"avg_change_failure_rate",
		"avg_mttr_hours",
		"last_updated",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	writeRow := func(summary *schema.RepositorySummary) error {
		return w.Write([]string{
			summary.Repository,
			fmt.Sprintf(intFmt, summary.DataPointCount),
			fmtFloat(summary.AvgDeploymentCount),
			fmtFloat(summary.AvgLeadTimeHours),
			fmtFloat(summary.AvgChangeFailureRate),
			formatNullable(summary.AvgRecoveryHours, fmtFloat, ""),
			summary.LastUpdated.Format(contract.DateTimeFormat),
		})
	}

	for i := range result.Repositories {
		if err := writeRow(&result.Repositories[i]); err != nil {
			return err
		}
	}
	if len(result.Repositories) > 1 {
		if err := writeRow(&result.Overall); err != nil {
			return err
		}
	}
	return nil
}
