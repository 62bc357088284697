package schema

import "time"

// FrequencyResult is the outcome of the deployment frequency calculator.
type FrequencyResult struct {
	Count     int            `json:"count"`
	Frequency FrequencyClass `json:"frequency"`
}

// FailureRateResult is the outcome of the change failure rate calculator.
type FailureRateResult struct {
	Total  int     `json:"total"`
	Failed int     `json:"failed"`
	Rate   float64 `json:"rate"` // Percent, 0-100
}

// DevOpsMetrics is the composed per-repository record for one reporting
// period. A nil pointer field means the metric had no signal in the period.
type DevOpsMetrics struct {
	Date                    time.Time      `json:"date"`
	Repository              string         `json:"repository"`
	DeploymentCount         int            `json:"deploymentCount"`
	DeploymentFrequency     FrequencyClass `json:"deploymentFrequency"`
	LeadTimeForChangesHours float64        `json:"leadTimeForChangesHours"`
	TotalDeployments        int            `json:"totalDeployments"`
	FailedDeployments       int            `json:"failedDeployments"`
	ChangeFailureRate       float64        `json:"changeFailureRate"` // Percent, 0-100
	MeanTimeToRecoveryHours *float64       `json:"meanTimeToRecoveryHours"`
	CycleTimeHours          *float64       `json:"cycleTimeHours"`
}

// PullRequestStats carries the secondary pull request indicators for one
// repository and period. Every mean is nil when no sample qualifies for it.
type PullRequestStats struct {
	MergedPRCount      int      `json:"mergedPrCount"`
	CycleTimeHours     *float64 `json:"cycleTimeHours"`     // Mean open-to-merge hours
	CodingTimeHours    *float64 `json:"codingTimeHours"`    // Mean first-commit-to-open hours
	ReviewLatencyHours *float64 `json:"reviewLatencyHours"` // Mean open-to-first-review hours
	ReworkRatePercent  *float64 `json:"reworkRatePercent"`  // Share of reviewed PRs with changes requested
	AvgPRSizeLines     *float64 `json:"avgPrSizeLines"`     // Mean additions plus deletions per merged PR
	MedianPRSizeLines  *float64 `json:"medianPrSizeLines"`
}

// TierSet groups the benchmark tier per DORA metric for one repository. An
// empty TimeToRecovery tier means recovery time had no signal.
type TierSet struct {
	DeploymentFrequency DoraTier `json:"deploymentFrequency"`
	LeadTime            DoraTier `json:"leadTime"`
	ChangeFailureRate   DoraTier `json:"changeFailureRate"`
	TimeToRecovery      DoraTier `json:"timeToRecovery,omitempty"`
}

// EventCounts tallies the raw events behind one repository report.
type EventCounts struct {
	PullRequests int `json:"pullRequests"`
	Deployments  int `json:"deployments"`
	WorkflowRuns int `json:"workflowRuns"`
	Issues       int `json:"issues"`
}

// RepositoryReport pairs the composed metrics for one repository with its
// benchmark classification and supporting counts.
type RepositoryReport struct {
	Metrics      DevOpsMetrics     `json:"metrics"`
	Tiers        TierSet           `json:"tiers"`
	Counts       EventCounts       `json:"counts"`
	IssuesClosed int               `json:"issuesClosed"`
	Stats        *PullRequestStats `json:"pullRequestStats,omitempty"` // Populated only in detail mode
}

// ReportResult is the full output of one report run.
type ReportResult struct {
	Reports    []RepositoryReport `json:"reports"`
	PeriodDays int                `json:"periodDays"`
	Date       time.Time          `json:"date"` // End of the reporting period
}

// WeeklyTrendData aggregates one ISO week of metric records.
type WeeklyTrendData struct {
	Week                 string   `json:"week"` // ISO 8601 week key, like 2026-W07
	TotalDeployments     int      `json:"totalDeployments"`
	AvgLeadTimeHours     *float64 `json:"avgLeadTimeHours"`
	AvgChangeFailureRate *float64 `json:"avgChangeFailureRate"`
	AvgCycleTimeHours    *float64 `json:"avgCycleTimeHours"`
}

// TrendChange holds the rendered week-over-week change per trend column.
type TrendChange struct {
	Deployments string `json:"deployments"`
	LeadTime    string `json:"leadTime"`
	FailureRate string `json:"failureRate"`
	CycleTime   string `json:"cycleTime"`
}

// TrendResult is the full output of one trends run. Changes runs parallel to
// Weeks, comparing each week against the one after it in the list.
type TrendResult struct {
	Repositories []string          `json:"repositories"`
	Weeks        []WeeklyTrendData `json:"weeks"` // Newest first
	Changes      []TrendChange     `json:"changes"`
}

// RepositorySummary is the per-repository aggregate over many stored records.
type RepositorySummary struct {
	Repository           string    `json:"repository"`
	DataPointCount       int       `json:"dataPointCount"`
	AvgDeploymentCount   float64   `json:"avgDeploymentCount"`
	AvgLeadTimeHours     float64   `json:"avgLeadTimeHours"`
	AvgChangeFailureRate float64   `json:"avgChangeFailureRate"`
	AvgRecoveryHours     *float64  `json:"avgRecoveryHours"` // Nil when no record carried a recovery time
	LastUpdated          time.Time `json:"lastUpdated"`
}

// MultiRepoSummary groups per-repository summaries with the cross-repository
// roll-up. The overall row is an unweighted mean of the per-repository means.
type MultiRepoSummary struct {
	Repositories []RepositorySummary `json:"repositories"`
	Overall      RepositorySummary   `json:"overall"`
}

// MetricHealth pairs one metric value with its threshold and resolved status.
// A nil status means the metric had no signal to evaluate.
type MetricHealth struct {
	Value     *float64      `json:"value"`
	Threshold Threshold     `json:"threshold"`
	Status    *HealthStatus `json:"status"`
}

// HealthReport is the outcome of evaluating one repository against the active
// thresholds.
type HealthReport struct {
	Repository string                     `json:"repository"`
	Metrics    map[MetricKey]MetricHealth `json:"metrics"`
	Overall    HealthStatus               `json:"overall"`
}

// HealthResult is the full output of one health run.
type HealthResult struct {
	Reports []HealthReport `json:"reports"`
	Overall HealthStatus   `json:"overall"` // Worst status across repositories
}
