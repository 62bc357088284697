package iostore

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dorascope/dorascope/internal/parquet"
	"github.com/dorascope/dorascope/schema"
)

// ExecuteHistoryExport exports stored metric records to a file. CSV and JSON
// are written directly; any other output mode exports Parquet.
func ExecuteHistoryExport(outputFile string, output schema.OutputMode) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the history store
	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history tracking is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRecords == 0 {
		return errors.New("no metric history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total metric records: %d\n", status.TotalRecords)
	fmt.Printf("Repositories covered: %d\n", status.RepositoryCount)

	// Retrieve all metric records
	records, err := store.GetAllMetrics()
	if err != nil {
		return fmt.Errorf("failed to retrieve metric records: %w", err)
	}

	switch output {
	case schema.CSVOut:
		err = exportMetricsCSV(records, outputFile)
	case schema.JSONOut:
		err = exportMetricsJSON(records, outputFile)
	default:
		rows := parquet.ConvertMetricRecords(records)
		err = parquet.WriteMetricRowsParquet(rows, outputFile)
	}
	if err != nil {
		return fmt.Errorf("failed to write metric records: %w", err)
	}
	fmt.Printf("Exported %d metric records to: %s\n", len(records), outputFile)

	if output != schema.CSVOut && output != schema.JSONOut {
		fmt.Println("\nExport complete! The Parquet file can be used with:")
		fmt.Println("  - Apache Spark")
		fmt.Println("  - Apache Arrow")
		fmt.Println("  - Pandas (via pyarrow)")
		fmt.Println("  - DuckDB")
		fmt.Println("  - Any other Parquet-compatible tool")
	}

	return nil
}

// exportMetricsCSV writes the records at full precision. Nullable metrics
// leave their cell empty so downstream tools read them as missing.
func exportMetricsCSV(records []schema.DevOpsMetrics, outputFile string) error {
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"repository", "date", "deployment_count", "deployment_frequency",
		"lead_time_hours", "total_deployments", "failed_deployments",
		"change_failure_rate", "mttr_hours", "cycle_time_hours",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range records {
		record := &records[i]
		row := []string{
			record.Repository,
			record.Date.Format(time.DateOnly),
			strconv.Itoa(record.DeploymentCount),
			string(record.DeploymentFrequency),
			formatExportFloat(record.LeadTimeForChangesHours),
			strconv.Itoa(record.TotalDeployments),
			strconv.Itoa(record.FailedDeployments),
			formatExportFloat(record.ChangeFailureRate),
			formatExportNullable(record.MeanTimeToRecoveryHours),
			formatExportNullable(record.CycleTimeHours),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// exportMetricsJSON writes the records as an indented JSON array.
func exportMetricsJSON(records []schema.DevOpsMetrics, outputFile string) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputFile, append(data, '\n'), 0o644)
}

func formatExportFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatExportNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return formatExportFloat(*v)
}
