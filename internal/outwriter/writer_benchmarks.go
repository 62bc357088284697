package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dorascope/dorascope/schema"
)

// writeJSONBenchmarks writes the benchmark definitions in JSON format.
func writeJSONBenchmarks(w io.Writer, renderModel *schema.BenchmarksRenderModel) error {
	return writeJSON(w, renderModel)
}

// writeCSVBenchmarks writes the benchmark definitions in CSV format, joining
// the tier cut points with the active thresholds on the metric name.
func writeCSVBenchmarks(w *csv.Writer, renderModel *schema.BenchmarksRenderModel, fmtFloat func(float64) string) error {
	// Write header
	header := []string{"metric", "elite", "high", "medium", "low", "good_threshold", "warning_threshold"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	thresholdsByMetric := make(map[string]schema.ThresholdRow, len(renderModel.Thresholds))
	for _, row := range renderModel.Thresholds {
		thresholdsByMetric[row.Metric] = row
	}

	// Write one row per benchmarked metric
	seen := make(map[string]struct{}, len(renderModel.Benchmarks))
	for _, row := range renderModel.Benchmarks {
		seen[row.Metric] = struct{}{}
		record := []string{row.Metric, row.Elite, row.High, row.Medium, row.Low, "", ""}
		if threshold, ok := thresholdsByMetric[row.Metric]; ok {
			record[5] = fmtFloat(threshold.Good)
			record[6] = fmtFloat(threshold.Warning)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	// Metrics with thresholds but no industry benchmark, such as cycle time
	for _, row := range renderModel.Thresholds {
		if _, ok := seen[row.Metric]; ok {
			continue
		}
		record := []string{row.Metric, "", "", "", "", fmtFloat(row.Good), fmtFloat(row.Warning)}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	return nil
}
