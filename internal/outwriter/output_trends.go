package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintTrendsResults outputs the weekly trends, dispatching based on the output format configured.
func PrintTrendsResults(result schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printTrendsJSON(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printTrendsCSV(result, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendsTable(w, result, fmtFloat, intFmt, duration)
		}, "Wrote trends table")
	}
	return nil
}

// printTrendsJSON handles opening the file and calling the JSON writer.
func printTrendsJSON(result schema.TrendResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForTrends(w, result)
	}, "Wrote JSON trends")
}

// printTrendsCSV handles opening the file and calling the CSV writer.
func printTrendsCSV(result schema.TrendResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForTrends(csvWriter, result, fmtFloat, intFmt)
	}, "Wrote CSV trends")
}

// writeTrendsTable prints the weekly trend rows, newest week first, pairing
// every metric column with its week-over-week change.
func writeTrendsTable(w io.Writer, result schema.TrendResult, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Weekly trends for: %s\n", strings.Join(result.Repositories, ", ")); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Week", "Deploys", "Change", "Lead Time (h)", "Change", "CFR (%)", "Change", "Cycle (h)", "Change"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
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
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Showing %d weeks, newest first. Trend analysis completed in %v\n", len(result.Weeks), duration)
	return err
}
