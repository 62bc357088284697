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

// PrintOverviewResults outputs the multi-repository summary, dispatching based
// on the output format configured.
func PrintOverviewResults(result schema.MultiRepoSummary, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printOverviewJSON(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printOverviewCSV(result, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOverviewTable(w, result, cfg, fmtFloat, intFmt, duration)
		}, "Wrote overview table")
	}
	return nil
}

// printOverviewJSON handles opening the file and calling the JSON writer.
func printOverviewJSON(result schema.MultiRepoSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForOverview(w, result)
	}, "Wrote JSON overview")
}

// printOverviewCSV handles opening the file and calling the CSV writer.
func printOverviewCSV(result schema.MultiRepoSummary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForOverview(csvWriter, result, fmtFloat, intFmt)
	}, "Wrote CSV overview")
}

// writeOverviewTable renders one summary row per repository, plus the overall
// roll-up when more than one repository is present.
func writeOverviewTable(w io.Writer, result schema.MultiRepoSummary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Repository", "Points", "Avg Deploys", "Avg Lead (h)", "Avg CFR (%)", "Avg MTTR (h)", "Last Updated"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxRepoWidth := GetMaxTableRepoWidth(cfg)
	var data [][]string
	for i := range result.Repositories {
		data = append(data, overviewRow(&result.Repositories[i], maxRepoWidth, fmtFloat, intFmt))
	}
	if len(result.Repositories) > 1 {
		data = append(data, overviewRow(&result.Overall, maxRepoWidth, fmtFloat, intFmt))
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Overview of %d repositories across %d data points, completed in %v\n",
		len(result.Repositories), result.Overall.DataPointCount, duration)
	return err
}

// overviewRow builds the table cells for one repository summary.
func overviewRow(summary *schema.RepositorySummary, maxRepoWidth int, fmtFloat func(float64) string, intFmt string) []string {
	return []string{
		contract.TruncateRepo(summary.Repository, maxRepoWidth),
		fmt.Sprintf(intFmt, summary.DataPointCount),
		fmtFloat(summary.AvgDeploymentCount),
		fmtFloat(summary.AvgLeadTimeHours),
		fmtFloat(summary.AvgChangeFailureRate),
		formatNullable(summary.AvgRecoveryHours, fmtFloat, ""),
		formatDate(summary.LastUpdated),
	}
}
