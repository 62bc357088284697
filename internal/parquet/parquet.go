// Package parquet provides data structures and functions for exporting metric
// history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/dorascope/dorascope/schema"
	"github.com/parquet-go/parquet-go"
)

// MetricRow represents the DORA metrics of one repository for one reporting
// period. This struct maps to the dorascope_metrics database table.
type MetricRow struct {
	// Repository is the owner/name slug the metrics were computed for
	Repository string `parquet:"repository,snappy"`

	// Date is the end of the reporting period (stored as TIMESTAMP with nanosecond precision)
	Date time.Time `parquet:"date,snappy"`

	// DeploymentCount is the number of successful deployments in the period
	DeploymentCount int32 `parquet:"deployment_count,snappy"`

	// DeploymentFrequency is the resolved frequency class (daily, weekly, monthly, yearly)
	DeploymentFrequency string `parquet:"deployment_frequency,snappy"`

	// LeadTimeHours is the mean lead time for changes in hours
	LeadTimeHours float64 `parquet:"lead_time_hours,snappy"`

	// TotalDeployments is the number of deployment attempts in the period
	TotalDeployments int32 `parquet:"total_deployments,snappy"`

	// FailedDeployments is the number of failed deployment attempts
	FailedDeployments int32 `parquet:"failed_deployments,snappy"`

	// ChangeFailureRate is the failure percentage across deployment attempts
	ChangeFailureRate float64 `parquet:"change_failure_rate,snappy"`

	// MTTRHours is the mean time to recovery in hours (nullable)
	MTTRHours *float64 `parquet:"mttr_hours,optional,snappy"`

	// CycleTimeHours is the mean open-to-merge time in hours (nullable)
	CycleTimeHours *float64 `parquet:"cycle_time_hours,optional,snappy"`
}

// WriteMetricRowsParquet writes a slice of MetricRow structs to a Parquet file.
func WriteMetricRowsParquet(data []MetricRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the MetricRow struct tags
	writer := parquet.NewGenericWriter[MetricRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchMetricRows generates sample MetricRow data for demonstration.
func MockFetchMetricRows() []MetricRow {
	now := time.Now()
	mttr1 := 4.2
	cycle1 := 28.5
	cycle2 := 52.0

	return []MetricRow{
		{
			Repository:          "acme/checkout",
			Date:                now,
			DeploymentCount:     42,
			DeploymentFrequency: "daily",
			LeadTimeHours:       16.4,
			TotalDeployments:    45,
			FailedDeployments:   3,
			ChangeFailureRate:   6.7,
			MTTRHours:           &mttr1,
			CycleTimeHours:      &cycle1,
		},
		{
			Repository:          "acme/billing",
			Date:                now.AddDate(0, 0, -7),
			DeploymentCount:     6,
			DeploymentFrequency: "weekly",
			LeadTimeHours:       70.1,
			TotalDeployments:    8,
			FailedDeployments:   2,
			ChangeFailureRate:   25.0,
			MTTRHours:           nil, // No incident recovered in the period - nullable field
			CycleTimeHours:      &cycle2,
		},
		{
			Repository:          "acme/legacy-batch",
			Date:                now.AddDate(0, 0, -30),
			DeploymentCount:     1,
			DeploymentFrequency: "monthly",
			LeadTimeHours:       210.0,
			TotalDeployments:    1,
			FailedDeployments:   0,
			ChangeFailureRate:   0,
			MTTRHours:           nil, // Nothing failed, nothing recovered - nullable field
			CycleTimeHours:      nil, // No merged pull requests - nullable field
		},
	}
}

// ConvertMetricRecords converts schema.DevOpsMetrics to MetricRow for Parquet export.
func ConvertMetricRecords(records []schema.DevOpsMetrics) []MetricRow {
	result := make([]MetricRow, len(records))
	for i, record := range records {
		result[i] = MetricRow{
			Repository:          record.Repository,
			Date:                record.Date,
			DeploymentCount:     int32(record.DeploymentCount),
			DeploymentFrequency: string(record.DeploymentFrequency),
			LeadTimeHours:       record.LeadTimeForChangesHours,
			TotalDeployments:    int32(record.TotalDeployments),
			FailedDeployments:   int32(record.FailedDeployments),
			ChangeFailureRate:   record.ChangeFailureRate,
			MTTRHours:           record.MeanTimeToRecoveryHours,
			CycleTimeHours:      record.CycleTimeHours,
		}
	}
	return result
}
