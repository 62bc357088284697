package schema

// Custom string types for type safety.
type (
	// MetricKey identifies one metric in threshold maps and health reports.
	MetricKey string

	// HealthStatus represents the resolved health of a metric or repository.
	HealthStatus string

	// DoraTier represents an industry benchmark performance tier.
	DoraTier string

	// FrequencyClass represents the cadence bucket of a deployment rate.
	FrequencyClass string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for metric history.
	DatabaseBackend string
)

// Metric keys used in threshold maps and health reports.
const (
	LeadTimeMetric    MetricKey = "lead_time_hours"
	FailureRateMetric MetricKey = "change_failure_rate"
	RecoveryMetric    MetricKey = "mttr_hours"
	CycleTimeMetric   MetricKey = "cycle_time_hours"
)

// All health statuses supported, from best to worst.
const (
	GoodStatus     HealthStatus = "good" // default
	WarningStatus  HealthStatus = "warning"
	CriticalStatus HealthStatus = "critical"
)

// All benchmark tiers supported, from best to worst.
const (
	EliteTier  DoraTier = "elite"
	HighTier   DoraTier = "high"
	MediumTier DoraTier = "medium"
	LowTier    DoraTier = "low"
)

// All frequency classes supported, from fastest to slowest cadence.
const (
	DailyFrequency   FrequencyClass = "daily"
	WeeklyFrequency  FrequencyClass = "weekly"
	MonthlyFrequency FrequencyClass = "monthly"
	YearlyFrequency  FrequencyClass = "yearly"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Event status and conclusion values the calculators recognize.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusError   = "error"
	StatusPending = "pending"
)

// AllMetricKeys lists every metric key in stable display order.
var AllMetricKeys = []MetricKey{LeadTimeMetric, FailureRateMetric, RecoveryMetric, CycleTimeMetric}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidHealthStatuses lists all valid health statuses.
var ValidHealthStatuses = map[HealthStatus]struct{}{
	GoodStatus:     {},
	WarningStatus:  {},
	CriticalStatus: {},
}

// ValidMetricKeys lists all valid metric keys.
var ValidMetricKeys = map[MetricKey]struct{}{
	LeadTimeMetric:    {},
	FailureRateMetric: {},
	RecoveryMetric:    {},
	CycleTimeMetric:   {},
}

// Threshold is a two-level cut for one metric. Values at or below Good are
// good, at or below Warning are warning, and anything beyond is critical.
// Lower is better for every metric fed through it.
type Threshold struct {
	Good    float64 `json:"good" mapstructure:"good"`
	Warning float64 `json:"warning" mapstructure:"warning"`
}

// GetDefaultThresholds returns the default health threshold map. Hour metrics
// cut at one day and one week; failure rate cuts follow the DORA benchmark
// percentages.
func GetDefaultThresholds() map[MetricKey]Threshold {
	return map[MetricKey]Threshold{
		LeadTimeMetric:    {Good: 24, Warning: 168},
		FailureRateMetric: {Good: 15, Warning: 30},
		RecoveryMetric:    {Good: 24, Warning: 168},
		CycleTimeMetric:   {Good: 24, Warning: 72},
	}
}
