package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
)

// writeJSONResultsForHealth marshals the schema.HealthResult to JSON and writes it.
func writeJSONResultsForHealth(w io.Writer, result schema.HealthResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForHealth writes one row per repository and metric, one
// overall row per repository, and a final overall row for the whole run.
func writeCSVResultsForHealth(w *csv.Writer, result schema.HealthResult, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"repository",
		"metric",
		"value",
		"good_threshold",
		"warning_threshold",
		"status",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for i := range result.Reports {
		report := &result.Reports[i]
		for _, key := range schema.AllMetricKeys {
			health, ok := report.Metrics[key]
			if !ok {
				continue
			}
			status := noSignalCell
			if health.Status != nil {
				status = contract.GetPlainStatusLabel(*health.Status)
			}
			row := []string{
				report.Repository,
				string(key),
				formatNullable(health.Value, fmtFloat, ""),
				fmtFloat(health.Threshold.Good),
				fmtFloat(health.Threshold.Warning),
				status,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		overallRow := []string{report.Repository, "overall", "", "", "", contract.GetPlainStatusLabel(report.Overall)}
		if err := w.Write(overallRow); err != nil {
			return err
		}
	}

	// 3. Write the cross-repository roll-up
	return w.Write([]string{"overall", "", "", "", "", contract.GetPlainStatusLabel(result.Overall)})
}
