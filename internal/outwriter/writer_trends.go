package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dorascope/dorascope/schema"
)

// changeAt returns the change column for the week at index i. Rows beyond the
// change list fall back to the no-basis marker.
func changeAt(changes []schema.TrendChange, i int) schema.TrendChange {
	if i < len(changes) {
		return changes[i]
	}
	return schema.TrendChange{
		Deployments: noSignalCell,
		LeadTime:    noSignalCell,
		FailureRate: noSignalCell,
		CycleTime:   noSignalCell,
	}
}

// writeJSONResultsForTrends marshals the schema.TrendResult to JSON and writes it.
func writeJSONResultsForTrends(w io.Writer, result schema.TrendResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForTrends writes the schema.TrendResult data to a CSV writer.
func writeCSVResultsForTrends(w *csv.Writer, result schema.TrendResult, fmtFloat func(float64) string, intFmt string) error {
	// 1. Write Header Row
	header := []string{
		"week",
		"total_deployments",
		"deployments_change",
		"avg_lead_time_hours",
		"lead_time_change",
		"avg_change_failure_rate",
		"failure_rate_change",
		"avg_cycle_time_hours",
		"cycle_time_change",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for i := range result.Weeks {
		week := &result.Weeks[i]
		change := changeAt(result.Changes, i)
		row := []string{
			week.Week,
			fmt.Sprintf(intFmt, week.TotalDeployments),
			change.Deployments,
			formatNullable(week.AvgLeadTimeHours, fmtFloat, ""),
			change.LeadTime,
			formatNullable(week.AvgChangeFailureRate, fmtFloat, ""),
			change.FailureRate,
			formatNullable(week.AvgCycleTimeHours, fmtFloat, ""),
			change.CycleTime,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
