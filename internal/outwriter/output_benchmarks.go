package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintBenchmarkDefinitions displays the industry tier cut points together
// with the active health thresholds. This is a static display that does not
// require fetching any events.
func PrintBenchmarkDefinitions(thresholds map[schema.MetricKey]schema.Threshold, cfg *contract.Config) error {
	// Build the complete render model with all processed data
	renderModel := buildBenchmarksRenderModel(thresholds)
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONBenchmarks(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			writer := csv.NewWriter(w)
			defer writer.Flush()
			return writeCSVBenchmarks(writer, renderModel, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBenchmarksText(w, renderModel, cfg, fmtFloat)
		}, "Wrote text")
	}
}

// writeBenchmarksText displays the benchmarks in human-readable text format.
func writeBenchmarksText(w io.Writer, renderModel *schema.BenchmarksRenderModel, cfg *contract.Config, fmtFloat func(float64) string) error {
	title := renderModel.Title
	if cfg.UseEmojis {
		title = "🏆 " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", len(renderModel.Title))); err != nil {
		return err
	}

	tierTable := tablewriter.NewWriter(w)
	tierTable.Header([]string{"Metric", "Elite", "High", "Medium", "Low"})
	tierTable.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var tierData [][]string
	for _, row := range renderModel.Benchmarks {
		tierData = append(tierData, []string{row.Metric, orNoSignal(row.Elite), row.High, row.Medium, row.Low})
	}
	if err := tierTable.Bulk(tierData); err != nil {
		return err
	}
	if err := tierTable.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nActive health thresholds (lower is better):\n"); err != nil {
		return err
	}
	thresholdTable := tablewriter.NewWriter(w)
	thresholdTable.Header([]string{"Metric", "Good", "Warning"})
	thresholdTable.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var thresholdData [][]string
	for _, row := range renderModel.Thresholds {
		thresholdData = append(thresholdData, []string{row.Metric, fmtFloat(row.Good), fmtFloat(row.Warning)})
	}
	if err := thresholdTable.Bulk(thresholdData); err != nil {
		return err
	}
	if err := thresholdTable.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n", renderModel.Note)
	return err
}

// orNoSignal substitutes the no-signal marker for empty display cells.
func orNoSignal(s string) string {
	if s == "" {
		return noSignalCell
	}
	return s
}

// buildBenchmarksRenderModel constructs the complete render model with all processed data.
func buildBenchmarksRenderModel(thresholds map[schema.MetricKey]schema.Threshold) *schema.BenchmarksRenderModel {
	benchmarks := []schema.BenchmarkRow{
		{
			Metric: "Deployment Frequency",
			Elite:  "1+/day",
			High:   "1+/week",
			Medium: "1+/month",
			Low:    "<1/month",
		},
		{
			Metric: metricDisplayName(schema.LeadTimeMetric),
			Elite:  "<1h",
			High:   "<24h",
			Medium: "<1 week",
			Low:    "1 week+",
		},
		{
			Metric: metricDisplayName(schema.FailureRateMetric),
			Elite:  "", // Indistinguishable from high on this metric alone
			High:   "<=15%",
			Medium: "<=30%",
			Low:    ">30%",
		},
		{
			Metric: metricDisplayName(schema.RecoveryMetric),
			Elite:  "<1h",
			High:   "<24h",
			Medium: "<1 week",
			Low:    "1 week+",
		},
	}

	rows := make([]schema.ThresholdRow, 0, len(schema.AllMetricKeys))
	for _, key := range schema.AllMetricKeys {
		threshold, ok := thresholds[key]
		if !ok {
			continue
		}
		rows = append(rows, schema.ThresholdRow{
			Metric:  metricDisplayName(key),
			Good:    threshold.Good,
			Warning: threshold.Warning,
		})
	}

	return &schema.BenchmarksRenderModel{
		Title:      "DORA Performance Benchmarks",
		Benchmarks: benchmarks,
		Thresholds: rows,
		Note:       "Change failure rate cannot reach elite on its own; the best achievable tier is high.",
	}
}
