package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintHealthResults outputs the health evaluation, dispatching based on the
// output format configured.
func PrintHealthResults(result schema.HealthResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printHealthJSON(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printHealthCSV(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHealthTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote health table")
	}
	return nil
}

// printHealthJSON handles opening the file and calling the JSON writer.
func printHealthJSON(result schema.HealthResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForHealth(w, result)
	}, "Wrote JSON health")
}

// printHealthCSV handles opening the file and calling the CSV writer.
func printHealthCSV(result schema.HealthResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForHealth(csvWriter, result, fmtFloat)
	}, "Wrote CSV health")
}

// writeHealthTable renders one row per repository and metric, ending with the
// repository's overall row. Metrics print in the stable display order.
func writeHealthTable(w io.Writer, result schema.HealthResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Repository", "Metric", "Value", "Good", "Warning", "Status"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxRepoWidth := GetMaxTableRepoWidth(cfg)
	var data [][]string
	for i := range result.Reports {
		report := &result.Reports[i]
		repo := contract.TruncateRepo(report.Repository, maxRepoWidth)
		for _, key := range schema.AllMetricKeys {
			health, ok := report.Metrics[key]
			if !ok {
				continue
			}
			unit := metricUnit(key)
			data = append(data, []string{
				repo,
				metricDisplayName(key),
				formatNullable(health.Value, fmtFloat, unit),
				fmtFloat(health.Threshold.Good) + unit,
				fmtFloat(health.Threshold.Warning) + unit,
				nullableStatusLabel(health.Status, cfg.UseColors),
			})
		}
		data = append(data, []string{repo, "Overall", "", "", "", statusLabel(report.Overall, cfg.UseColors)})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Overall health: %s. Evaluation completed in %v\n",
		statusLabel(result.Overall, cfg.UseColors), duration)
	return err
}
