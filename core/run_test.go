package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// runDate anchors the orchestration tests on a fixed period end. The date is
// a Saturday, so the ISO week fallback fixtures cross a week boundary.
var runDate = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

// runConfig builds a report configuration over a 30-day window ending at
// runDate.
func runConfig(repos ...string) *contract.Config {
	return &contract.Config{
		Repos:      repos,
		PeriodDays: 30,
		Date:       runDate,
		Workers:    2,
		Output:     schema.TextOut,
	}
}

// fullBundle builds one repository window with enough signal for every
// calculator: two merged pull requests with matched deployments, one failure
// that recovers six hours later, and a closed issue.
func fullBundle(repo string) schema.EventBundle {
	day := func(daysAgo, hour int) time.Time {
		return runDate.AddDate(0, 0, -daysAgo).Add(time.Duration(hour) * time.Hour)
	}
	mergedA := day(22, 15)
	mergedB := day(11, 10)
	closedAt := day(14, 9)

	return schema.EventBundle{
		Repository: repo,
		PullRequests: []schema.PullRequest{
			{Number: 101, State: "closed", CreatedAt: day(22, 9), MergedAt: &mergedA, Additions: 80, Deletions: 20, ReviewCount: 2},
			{Number: 102, State: "closed", CreatedAt: day(12, 10), MergedAt: &mergedB, Additions: 30, Deletions: 10, ReviewCount: 1, ChangesRequested: 1},
			{Number: 103, State: "open", CreatedAt: day(7, 0)},
		},
		Deployments: []schema.Deployment{
			{ID: 1, Status: schema.StatusSuccess, CreatedAt: day(22, 18)},
			{ID: 2, Status: schema.StatusFailure, CreatedAt: day(17, 12)},
			{ID: 3, Status: schema.StatusSuccess, CreatedAt: day(17, 18)},
			{ID: 4, Status: schema.StatusSuccess, CreatedAt: day(11, 12)},
		},
		WorkflowRuns: []schema.WorkflowRun{
			{ID: 10, Status: "completed", Conclusion: schema.StatusSuccess, CreatedAt: day(20, 8)},
			{ID: 11, Status: "completed", Conclusion: schema.StatusSuccess, CreatedAt: day(10, 8)},
		},
		Issues: []schema.Issue{
			{ID: 20, Number: 7, State: "closed", CreatedAt: day(20, 9), ClosedAt: &closedAt},
			{ID: 21, Number: 8, State: "open", CreatedAt: day(6, 9)},
		},
	}
}

// TestGetReportResultsSuccess tests the full fetch, compose and classify flow
// for one repository.
func TestGetReportResultsSuccess(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockProvider := &contract.MockEventProvider{}
	mockMgr := &contract.MockHistoryManager{}
	cfg := runConfig("acme/checkout")

	// Setup mock expectations
	mockMgr.On("GetHistoryStore").Return(nil) // No history tracking for test
	mockProvider.On("FetchEvents", ctx, "acme/checkout", cfg.GetWindowStart(), cfg.GetWindowEnd()).
		Return(fullBundle("acme/checkout"), nil)

	result, err := GetReportResults(ctx, cfg, mockProvider, mockMgr)

	assert.NoError(t, err)
	assert.Len(t, result.Reports, 1)
	assert.Equal(t, 30, result.PeriodDays)
	assert.Equal(t, runDate, result.Date)

	report := result.Reports[0]
	metrics := report.Metrics
	assert.Equal(t, "acme/checkout", metrics.Repository)
	assert.Equal(t, runDate, metrics.Date)
	assert.Equal(t, 3, metrics.DeploymentCount)
	assert.Equal(t, schema.MonthlyFrequency, metrics.DeploymentFrequency)
	assert.InDelta(t, 2.5, metrics.LeadTimeForChangesHours, 0.001)
	assert.Equal(t, 4, metrics.TotalDeployments)
	assert.Equal(t, 1, metrics.FailedDeployments)
	assert.InDelta(t, 25.0, metrics.ChangeFailureRate, 0.001)
	if assert.NotNil(t, metrics.MeanTimeToRecoveryHours) {
		assert.InDelta(t, 6.0, *metrics.MeanTimeToRecoveryHours, 0.001)
	}
	if assert.NotNil(t, metrics.CycleTimeHours) {
		assert.InDelta(t, 15.0, *metrics.CycleTimeHours, 0.001)
	}

	assert.Equal(t, schema.MediumTier, report.Tiers.DeploymentFrequency)
	assert.Equal(t, schema.HighTier, report.Tiers.LeadTime)
	assert.Equal(t, schema.MediumTier, report.Tiers.ChangeFailureRate)
	assert.Equal(t, schema.HighTier, report.Tiers.TimeToRecovery)
	assert.Equal(t, schema.EventCounts{PullRequests: 3, Deployments: 4, WorkflowRuns: 2, Issues: 2}, report.Counts)
	assert.Equal(t, 1, report.IssuesClosed)
	assert.Nil(t, report.Stats) // Detail mode is off

	mockProvider.AssertExpectations(t)
	mockMgr.AssertExpectations(t)
}

// TestGetReportResultsNoRepos tests the guard for an empty repository list.
func TestGetReportResultsNoRepos(t *testing.T) {
	ctx := context.Background()
	mockProvider := &contract.MockEventProvider{}

	result, err := GetReportResults(ctx, runConfig(), mockProvider, nil)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "no repositories specified")
	mockProvider.AssertExpectations(t)
}

// TestGetReportResultsAllFetchesFail tests that a run with no surviving
// repository reports an error instead of an empty result.
func TestGetReportResultsAllFetchesFail(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockProvider := &contract.MockEventProvider{}
	cfg := runConfig("acme/checkout")

	// Setup mock expectations - the only fetch fails
	mockProvider.On("FetchEvents", ctx, "acme/checkout", cfg.GetWindowStart(), cfg.GetWindowEnd()).
		Return(schema.EventBundle{}, assert.AnError)

	result, err := GetReportResults(ctx, cfg, mockProvider, nil)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "no repository data fetched")
	mockProvider.AssertExpectations(t)
}

// TestGetReportResultsPartialFailure tests that one failing repository is
// skipped while the surviving one still reports.
func TestGetReportResultsPartialFailure(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockProvider := &contract.MockEventProvider{}
	cfg := runConfig("acme/checkout", "acme/billing")

	// Setup mock expectations - billing fails, checkout succeeds
	mockProvider.On("FetchEvents", ctx, "acme/checkout", cfg.GetWindowStart(), cfg.GetWindowEnd()).
		Return(fullBundle("acme/checkout"), nil)
	mockProvider.On("FetchEvents", ctx, "acme/billing", cfg.GetWindowStart(), cfg.GetWindowEnd()).
		Return(schema.EventBundle{}, assert.AnError)

	result, err := GetReportResults(ctx, cfg, mockProvider, nil)

	assert.NoError(t, err)
	assert.Len(t, result.Reports, 1)
	assert.Equal(t, "acme/checkout", result.Reports[0].Metrics.Repository)
	mockProvider.AssertExpectations(t)
}

// TestGetReportResultsPreservesRepoOrder tests that reports come back in
// configured order even though the worker pool completes in arbitrary order.
func TestGetReportResultsPreservesRepoOrder(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockProvider := &contract.MockEventProvider{}
	cfg := runConfig("acme/checkout", "acme/billing", "acme/docs")
	cfg.Workers = 3

	// Setup mock expectations
	for _, repo := range cfg.Repos {
		mockProvider.On("FetchEvents", ctx, repo, cfg.GetWindowStart(), cfg.GetWindowEnd()).
			Return(schema.EventBundle{Repository: repo}, nil)
	}

	result, err := GetReportResults(ctx, cfg, mockProvider, nil)

	assert.NoError(t, err)
	assert.Len(t, result.Reports, 3)
	for i, repo := range cfg.Repos {
		assert.Equal(t, repo, result.Reports[i].Metrics.Repository)
	}
	mockProvider.AssertExpectations(t)
}

// TestGetReportResultsDetailStats tests that detail mode attaches the pull
// request stats block.
func TestGetReportResultsDetailStats(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockProvider := &contract.MockEventProvider{}
	cfg := runConfig("acme/checkout")
	cfg.Detail = true

	// Setup mock expectations
	mockProvider.On("FetchEvents", ctx, "acme/checkout", cfg.GetWindowStart(), cfg.GetWindowEnd()).
		Return(fullBundle("acme/checkout"), nil)

	result, err := GetReportResults(ctx, cfg, mockProvider, nil)

	assert.NoError(t, err)
	assert.Len(t, result.Reports, 1)
	stats := result.Reports[0].Stats
	if assert.NotNil(t, stats) {
		assert.Equal(t, 2, stats.MergedPRCount)
		if assert.NotNil(t, stats.CycleTimeHours) {
			assert.InDelta(t, 15.0, *stats.CycleTimeHours, 0.001)
		}
		if assert.NotNil(t, stats.ReworkRatePercent) {
			assert.InDelta(t, 50.0, *stats.ReworkRatePercent, 0.001)
		}
	}
	mockProvider.AssertExpectations(t)
}

// TestGetReportResultsRecordsHistory tests that each composed record is
// upserted into the configured history store.
func TestGetReportResultsRecordsHistory(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockProvider := &contract.MockEventProvider{}
	mockMgr := &contract.MockHistoryManager{}
	mockStore := &contract.MockHistoryStore{}
	cfg := runConfig("acme/checkout", "acme/billing")

	// Setup mock expectations
	mockMgr.On("GetHistoryStore").Return(mockStore)
	mockStore.On("UpsertMetrics", mock.AnythingOfType("schema.DevOpsMetrics")).Return(nil)
	for _, repo := range cfg.Repos {
		mockProvider.On("FetchEvents", ctx, repo, cfg.GetWindowStart(), cfg.GetWindowEnd()).
			Return(fullBundle(repo), nil)
	}

	result, err := GetReportResults(ctx, cfg, mockProvider, mockMgr)

	assert.NoError(t, err)
	assert.Len(t, result.Reports, 2)
	mockStore.AssertNumberOfCalls(t, "UpsertMetrics", 2)
	mockProvider.AssertExpectations(t)
	mockMgr.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

// TestGetReportResultsHistoryFailureStillSucceeds tests that a failing upsert
// warns without failing the report run.
func TestGetReportResultsHistoryFailureStillSucceeds(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockProvider := &contract.MockEventProvider{}
	mockMgr := &contract.MockHistoryManager{}
	mockStore := &contract.MockHistoryStore{}
	cfg := runConfig("acme/checkout")

	// Setup mock expectations - upsert fails
	mockMgr.On("GetHistoryStore").Return(mockStore)
	mockStore.On("UpsertMetrics", mock.AnythingOfType("schema.DevOpsMetrics")).Return(assert.AnError)
	mockProvider.On("FetchEvents", ctx, "acme/checkout", cfg.GetWindowStart(), cfg.GetWindowEnd()).
		Return(fullBundle("acme/checkout"), nil)

	result, err := GetReportResults(ctx, cfg, mockProvider, mockMgr)

	assert.NoError(t, err)
	assert.Len(t, result.Reports, 1)
	mockStore.AssertExpectations(t)
}

// TestGetOverviewResultsFromHistory tests the stored-history aggregation path.
func TestGetOverviewResultsFromHistory(t *testing.T) {
	ctx := context.Background()
	mockProvider := &contract.MockEventProvider{}
	mockMgr := &contract.MockHistoryManager{}
	mockStore := &contract.MockHistoryStore{}
	cfg := runConfig("acme/checkout", "acme/billing")
	cfg.FromHistory = true

	records := []schema.DevOpsMetrics{
		{Repository: "acme/checkout", Date: runDate, DeploymentCount: 4},
		{Repository: "acme/checkout", Date: runDate.AddDate(0, 0, -7), DeploymentCount: 2},
		{Repository: "acme/billing", Date: runDate.AddDate(0, 0, -3), DeploymentCount: 6},
	}

	// Setup mock expectations
	mockMgr.On("GetHistoryStore").Return(mockStore)
	mockStore.On("GetMetricsSince", cfg.Repos, time.Time{}).Return(records, nil)

	summary, err := GetOverviewResults(ctx, cfg, mockProvider, mockMgr)

	assert.NoError(t, err)
	assert.Len(t, summary.Repositories, 2)
	assert.Equal(t, "acme/billing", summary.Repositories[0].Repository)
	assert.Equal(t, 1, summary.Repositories[0].DataPointCount)
	assert.Equal(t, "acme/checkout", summary.Repositories[1].Repository)
	assert.Equal(t, 2, summary.Repositories[1].DataPointCount)
	assert.InDelta(t, 3.0, summary.Repositories[1].AvgDeploymentCount, 0.001)
	assert.Equal(t, OverallSummaryName, summary.Overall.Repository)
	assert.Equal(t, 3, summary.Overall.DataPointCount)
	assert.Equal(t, runDate, summary.Overall.LastUpdated)

	mockProvider.AssertNotCalled(t, "FetchEvents")
	mockMgr.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

// TestGetOverviewResultsFromHistoryEmpty tests the error when the store holds
// nothing for the requested repositories.
func TestGetOverviewResultsFromHistoryEmpty(t *testing.T) {
	ctx := context.Background()
	mockMgr := &contract.MockHistoryManager{}
	mockStore := &contract.MockHistoryStore{}
	cfg := runConfig("acme/checkout")
	cfg.FromHistory = true

	// Setup mock expectations - store is empty
	mockMgr.On("GetHistoryStore").Return(mockStore)
	mockStore.On("GetMetricsSince", cfg.Repos, time.Time{}).Return([]schema.DevOpsMetrics{}, nil)

	_, err := GetOverviewResults(ctx, cfg, &contract.MockEventProvider{}, mockMgr)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no stored metrics found")
	mockStore.AssertExpectations(t)
}

// TestGetOverviewResultsFromHistoryWithoutManager tests that history mode
// without a configured backend reports the same missing-data error.
func TestGetOverviewResultsFromHistoryWithoutManager(t *testing.T) {
	cfg := runConfig("acme/checkout")
	cfg.FromHistory = true

	_, err := GetOverviewResults(context.Background(), cfg, &contract.MockEventProvider{}, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no stored metrics found")
}

// TestGetOverviewResultsLive tests the aggregation over a fresh report run.
func TestGetOverviewResultsLive(t *testing.T) {
	ctx := context.Background()
	mockProvider := &contract.MockEventProvider{}
	cfg := runConfig("acme/checkout")

	// Setup mock expectations - the report runs with a suppressed header, so
	// the context seen by the provider is a derived one
	mockProvider.On("FetchEvents", mock.Anything, "acme/checkout", cfg.GetWindowStart(), cfg.GetWindowEnd()).
		Return(fullBundle("acme/checkout"), nil)

	summary, err := GetOverviewResults(ctx, cfg, mockProvider, nil)

	assert.NoError(t, err)
	assert.Len(t, summary.Repositories, 1)
	assert.Equal(t, "acme/checkout", summary.Repositories[0].Repository)
	assert.Equal(t, 1, summary.Repositories[0].DataPointCount)
	assert.InDelta(t, 3.0, summary.Repositories[0].AvgDeploymentCount, 0.001)
	assert.Equal(t, runDate, summary.Repositories[0].LastUpdated)
	assert.Equal(t, 1, summary.Overall.DataPointCount)
	mockProvider.AssertExpectations(t)
}

// TestGetTrendsResultsNoRepos tests the guard for an empty repository list.
func TestGetTrendsResultsNoRepos(t *testing.T) {
	_, err := GetTrendsResults(context.Background(), runConfig(), &contract.MockEventProvider{}, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no repositories specified")
}

// TestGetTrendsResultsFromHistory tests the stored-history trend path.
func TestGetTrendsResultsFromHistory(t *testing.T) {
	ctx := context.Background()
	mockProvider := &contract.MockEventProvider{}
	mockMgr := &contract.MockHistoryManager{}
	mockStore := &contract.MockHistoryStore{}
	cfg := runConfig("acme/checkout")
	cfg.TrendWeeks = 4

	records := []schema.DevOpsMetrics{
		weekRecord("acme/checkout", 0, 5, 10),
		weekRecord("acme/checkout", 1, 4, 12),
		weekRecord("acme/checkout", 2, 2, 20),
	}

	// Setup mock expectations
	mockMgr.On("GetHistoryStore").Return(mockStore)
	mockStore.On("GetMetricsSince", cfg.Repos, cfg.Date.AddDate(0, 0, -28)).Return(records, nil)

	result, err := GetTrendsResults(ctx, cfg, mockProvider, mockMgr)

	assert.NoError(t, err)
	assert.Equal(t, cfg.Repos, result.Repositories)
	assert.Len(t, result.Weeks, 3)
	assert.Len(t, result.Changes, 3)
	assert.Equal(t, 5, result.Weeks[0].TotalDeployments) // Newest first
	assert.Equal(t, 2, result.Weeks[2].TotalDeployments)
	assert.Equal(t, "-", result.Changes[2].Deployments) // Oldest row has no basis

	mockProvider.AssertNotCalled(t, "FetchEvents")
	mockStore.AssertExpectations(t)
}

// TestGetTrendsResultsComposeFallback tests that an absent history backend
// falls back to one fetch per repository, partitioned into weekly records.
func TestGetTrendsResultsComposeFallback(t *testing.T) {
	ctx := context.Background()
	mockProvider := &contract.MockEventProvider{}
	cfg := runConfig("acme/checkout")
	cfg.TrendWeeks = 2

	newestStart := StartOfISOWeek(runDate)
	oldestStart := newestStart.AddDate(0, 0, -7)
	bundle := schema.EventBundle{
		Repository: "acme/checkout",
		Deployments: []schema.Deployment{
			{ID: 1, Status: schema.StatusSuccess, CreatedAt: oldestStart.Add(30 * time.Hour)},
			{ID: 2, Status: schema.StatusSuccess, CreatedAt: newestStart.Add(24 * time.Hour)},
			{ID: 3, Status: schema.StatusSuccess, CreatedAt: newestStart.Add(48 * time.Hour)},
		},
	}

	// Setup mock expectations - a single fetch covers the whole span
	mockProvider.On("FetchEvents", ctx, "acme/checkout", oldestStart, cfg.Date).Return(bundle, nil)

	result, err := GetTrendsResults(ctx, cfg, mockProvider, nil)

	assert.NoError(t, err)
	assert.Len(t, result.Weeks, 2)
	assert.Equal(t, ISOWeekKey(newestStart), result.Weeks[0].Week)
	assert.Equal(t, 2, result.Weeks[0].TotalDeployments)
	assert.Equal(t, ISOWeekKey(oldestStart), result.Weeks[1].Week)
	assert.Equal(t, 1, result.Weeks[1].TotalDeployments)
	assert.Equal(t, "+100%", result.Changes[0].Deployments)

	mockProvider.AssertNumberOfCalls(t, "FetchEvents", 1)
	mockProvider.AssertExpectations(t)
}

// TestGetTrendsResultsHistoryErrorFallsBack tests that a failing store lookup
// degrades to the compose fallback instead of failing the command.
func TestGetTrendsResultsHistoryErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	mockProvider := &contract.MockEventProvider{}
	mockMgr := &contract.MockHistoryManager{}
	mockStore := &contract.MockHistoryStore{}
	cfg := runConfig("acme/checkout")
	cfg.TrendWeeks = 2

	oldestStart := StartOfISOWeek(runDate).AddDate(0, 0, -7)
	bundle := schema.EventBundle{
		Repository: "acme/checkout",
		Deployments: []schema.Deployment{
			{ID: 1, Status: schema.StatusSuccess, CreatedAt: oldestStart.Add(12 * time.Hour)},
		},
	}

	// Setup mock expectations - lookup fails, fetch succeeds
	mockMgr.On("GetHistoryStore").Return(mockStore)
	mockStore.On("GetMetricsSince", cfg.Repos, mock.AnythingOfType("time.Time")).Return(nil, assert.AnError)
	mockProvider.On("FetchEvents", ctx, "acme/checkout", oldestStart, cfg.Date).Return(bundle, nil)

	result, err := GetTrendsResults(ctx, cfg, mockProvider, mockMgr)

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Weeks)
	mockStore.AssertExpectations(t)
	mockProvider.AssertExpectations(t)
}

// TestEvaluateReportHealth tests threshold evaluation across repositories,
// including the nil recovery signal and the worst-of overall reduction.
func TestEvaluateReportHealth(t *testing.T) {
	thresholds := schema.GetDefaultThresholds()
	result := &schema.ReportResult{
		Reports: []schema.RepositoryReport{
			{Metrics: schema.DevOpsMetrics{
				Repository:              "acme/checkout",
				LeadTimeForChangesHours: 30,
				ChangeFailureRate:       42,
				CycleTimeHours:          floatPtr(18),
			}},
			{Metrics: schema.DevOpsMetrics{
				Repository:              "acme/billing",
				LeadTimeForChangesHours: 2,
				ChangeFailureRate:       5,
				MeanTimeToRecoveryHours: floatPtr(3),
				CycleTimeHours:          floatPtr(10),
			}},
		},
	}

	health := EvaluateReportHealth(result, thresholds)

	assert.Len(t, health.Reports, 2)
	assert.Equal(t, schema.CriticalStatus, health.Overall)

	checkout := health.Reports[0]
	assert.Equal(t, "acme/checkout", checkout.Repository)
	assert.Equal(t, schema.CriticalStatus, checkout.Overall)
	assert.Len(t, checkout.Metrics, 4)
	assert.Equal(t, statusPtr(schema.WarningStatus), checkout.Metrics[schema.LeadTimeMetric].Status)
	assert.Equal(t, statusPtr(schema.CriticalStatus), checkout.Metrics[schema.FailureRateMetric].Status)
	assert.Nil(t, checkout.Metrics[schema.RecoveryMetric].Status) // No recovery signal
	assert.Nil(t, checkout.Metrics[schema.RecoveryMetric].Value)
	assert.Equal(t, statusPtr(schema.GoodStatus), checkout.Metrics[schema.CycleTimeMetric].Status)

	billing := health.Reports[1]
	assert.Equal(t, schema.GoodStatus, billing.Overall)
}

// TestEvaluateReportHealthSkipsUnconfigured tests that metrics without a
// threshold never appear in the evaluated report.
func TestEvaluateReportHealthSkipsUnconfigured(t *testing.T) {
	thresholds := map[schema.MetricKey]schema.Threshold{
		schema.LeadTimeMetric: {Good: 24, Warning: 168},
	}
	result := &schema.ReportResult{
		Reports: []schema.RepositoryReport{
			{Metrics: schema.DevOpsMetrics{Repository: "acme/checkout", LeadTimeForChangesHours: 200, ChangeFailureRate: 90}},
		},
	}

	health := EvaluateReportHealth(result, thresholds)

	assert.Len(t, health.Reports[0].Metrics, 1)
	assert.Contains(t, health.Reports[0].Metrics, schema.LeadTimeMetric)
	assert.Equal(t, schema.CriticalStatus, health.Overall) // From lead time alone
}

// TestExecuteReport tests the report entry point writing JSON to a file.
func TestExecuteReport(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockProvider := &contract.MockEventProvider{}
	cfg := runConfig("acme/checkout")
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.json")

	// Setup mock expectations
	mockProvider.On("FetchEvents", ctx, "acme/checkout", cfg.GetWindowStart(), cfg.GetWindowEnd()).
		Return(fullBundle("acme/checkout"), nil)

	err := ExecuteReport(ctx, cfg, mockProvider, nil)

	assert.NoError(t, err)
	data, readErr := os.ReadFile(cfg.OutputFile)
	assert.NoError(t, readErr)
	assert.Contains(t, string(data), "acme/checkout")
	mockProvider.AssertExpectations(t)
}

// TestExecuteOverview tests the overview entry point over stored history.
func TestExecuteOverview(t *testing.T) {
	ctx := context.Background()
	mockMgr := &contract.MockHistoryManager{}
	mockStore := &contract.MockHistoryStore{}
	cfg := runConfig("acme/checkout")
	cfg.FromHistory = true
	cfg.Output = schema.CSVOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "overview.csv")

	records := []schema.DevOpsMetrics{
		{Repository: "acme/checkout", Date: runDate, DeploymentCount: 4},
	}

	// Setup mock expectations
	mockMgr.On("GetHistoryStore").Return(mockStore)
	mockStore.On("GetMetricsSince", cfg.Repos, time.Time{}).Return(records, nil)

	err := ExecuteOverview(ctx, cfg, &contract.MockEventProvider{}, mockMgr)

	assert.NoError(t, err)
	data, readErr := os.ReadFile(cfg.OutputFile)
	assert.NoError(t, readErr)
	assert.Contains(t, string(data), OverallSummaryName)
	mockStore.AssertExpectations(t)
}

// TestExecuteTrends tests the trends entry point over stored history.
func TestExecuteTrends(t *testing.T) {
	ctx := context.Background()
	mockMgr := &contract.MockHistoryManager{}
	mockStore := &contract.MockHistoryStore{}
	cfg := runConfig("acme/checkout")
	cfg.TrendWeeks = 4
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "trends.json")

	records := []schema.DevOpsMetrics{
		weekRecord("acme/checkout", 0, 5, 10),
		weekRecord("acme/checkout", 1, 4, 12),
	}

	// Setup mock expectations
	mockMgr.On("GetHistoryStore").Return(mockStore)
	mockStore.On("GetMetricsSince", cfg.Repos, mock.AnythingOfType("time.Time")).Return(records, nil)

	err := ExecuteTrends(ctx, cfg, &contract.MockEventProvider{}, mockMgr)

	assert.NoError(t, err)
	data, readErr := os.ReadFile(cfg.OutputFile)
	assert.NoError(t, readErr)
	assert.Contains(t, string(data), "-W") // ISO week keys made it through
	mockStore.AssertExpectations(t)
}

// TestExecuteHealthGateTrips tests that a critical overall status trips the
// fail-on gate after the webhook fires.
func TestExecuteHealthGateTrips(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockProvider := &contract.MockEventProvider{}
	mockNotifier := &contract.MockNotifier{}
	cfg := runConfig("acme/checkout")
	cfg.HealthThresholds = schema.GetDefaultThresholds()
	cfg.FailOn = schema.CriticalStatus
	cfg.OutputFile = filepath.Join(t.TempDir(), "health.txt")

	// Half the deployments fail, which lands beyond the 30 percent cut
	bundle := schema.EventBundle{
		Repository: "acme/checkout",
		Deployments: []schema.Deployment{
			{ID: 1, Status: schema.StatusFailure, CreatedAt: runDate.AddDate(0, 0, -10)},
			{ID: 2, Status: schema.StatusSuccess, CreatedAt: runDate.AddDate(0, 0, -9)},
		},
	}

	// Setup mock expectations
	mockProvider.On("FetchEvents", ctx, "acme/checkout", cfg.GetWindowStart(), cfg.GetWindowEnd()).
		Return(bundle, nil)
	mockNotifier.On("Send", ctx, mock.AnythingOfType("schema.HealthResult")).Return(nil)

	err := ExecuteHealth(ctx, cfg, mockProvider, nil, mockNotifier)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "overall health is critical")
	mockProvider.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

// TestExecuteHealthNotifierFailureDoesNotFail tests that webhook delivery
// problems warn without failing the command.
func TestExecuteHealthNotifierFailureDoesNotFail(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockProvider := &contract.MockEventProvider{}
	mockNotifier := &contract.MockNotifier{}
	cfg := runConfig("acme/checkout")
	cfg.HealthThresholds = schema.GetDefaultThresholds()
	cfg.OutputFile = filepath.Join(t.TempDir(), "health.txt")

	// Setup mock expectations - delivery fails
	mockProvider.On("FetchEvents", ctx, "acme/checkout", cfg.GetWindowStart(), cfg.GetWindowEnd()).
		Return(fullBundle("acme/checkout"), nil)
	mockNotifier.On("Send", ctx, mock.AnythingOfType("schema.HealthResult")).Return(assert.AnError)

	err := ExecuteHealth(ctx, cfg, mockProvider, nil, mockNotifier)

	assert.NoError(t, err)
	mockNotifier.AssertExpectations(t)
}

// TestExecuteHealthWithoutNotifier tests the health flow with no webhook
// configured.
func TestExecuteHealthWithoutNotifier(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockProvider := &contract.MockEventProvider{}
	cfg := runConfig("acme/checkout")
	cfg.HealthThresholds = schema.GetDefaultThresholds()
	cfg.OutputFile = filepath.Join(t.TempDir(), "health.txt")

	// Setup mock expectations
	mockProvider.On("FetchEvents", ctx, "acme/checkout", cfg.GetWindowStart(), cfg.GetWindowEnd()).
		Return(fullBundle("acme/checkout"), nil)

	err := ExecuteHealth(ctx, cfg, mockProvider, nil, nil)

	assert.NoError(t, err)
	mockProvider.AssertExpectations(t)
}

// TestExecuteBenchmarks tests the static benchmark display.
func TestExecuteBenchmarks(t *testing.T) {
	cfg := runConfig()
	cfg.HealthThresholds = schema.GetDefaultThresholds()
	cfg.OutputFile = filepath.Join(t.TempDir(), "benchmarks.txt")

	err := ExecuteBenchmarks(context.Background(), cfg)

	assert.NoError(t, err)
	data, readErr := os.ReadFile(cfg.OutputFile)
	assert.NoError(t, readErr)
	assert.Contains(t, string(data), "Deployment Frequency")
}

// TestClassifyMetrics tests tier classification including the untiered
// recovery case.
func TestClassifyMetrics(t *testing.T) {
	metrics := schema.DevOpsMetrics{
		DeploymentCount:         30,
		LeadTimeForChangesHours: 0.5,
		ChangeFailureRate:       10,
	}

	tiers := classifyMetrics(&metrics, 30)
	assert.Equal(t, schema.EliteTier, tiers.DeploymentFrequency) // One per day
	assert.Equal(t, schema.EliteTier, tiers.LeadTime)
	assert.Equal(t, schema.HighTier, tiers.ChangeFailureRate)
	assert.Empty(t, tiers.TimeToRecovery)

	metrics.MeanTimeToRecoveryHours = floatPtr(2)
	tiers = classifyMetrics(&metrics, 30)
	assert.Equal(t, schema.HighTier, tiers.TimeToRecovery)
}

// TestCountClosedIssues tests the closed issue tally.
func TestCountClosedIssues(t *testing.T) {
	closed := runDate.AddDate(0, 0, -3)
	issues := []schema.Issue{
		{ID: 1, State: "closed", ClosedAt: &closed},
		{ID: 2, State: "open"},
		{ID: 3, State: "closed", ClosedAt: &closed},
	}

	assert.Equal(t, 2, countClosedIssues(issues))
	assert.Equal(t, 0, countClosedIssues(nil))
}

// TestBundleForWeek tests the half-open weekly window partitioning.
func TestBundleForWeek(t *testing.T) {
	start := time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	bundle := schema.EventBundle{
		Repository: "acme/checkout",
		PullRequests: []schema.PullRequest{
			{Number: 1, CreatedAt: start},                   // On start, kept
			{Number: 2, CreatedAt: end},                     // On end, dropped
			{Number: 3, CreatedAt: start.Add(-time.Second)}, // Before start, dropped
		},
		Deployments: []schema.Deployment{
			{ID: 1, CreatedAt: end.Add(-time.Second)},
		},
		WorkflowRuns: []schema.WorkflowRun{
			{ID: 2, CreatedAt: start.Add(72 * time.Hour)},
		},
		Issues: []schema.Issue{
			{ID: 3, CreatedAt: start},
		},
	}

	out := bundleForWeek(&bundle, start, end)

	assert.Equal(t, "acme/checkout", out.Repository)
	assert.Len(t, out.PullRequests, 1)
	assert.Equal(t, 1, out.PullRequests[0].Number)
	assert.Len(t, out.Deployments, 1)
	assert.Len(t, out.WorkflowRuns, 1)
	assert.Empty(t, out.Issues)
}

// TestStatusReaches tests the gate comparison across status ranks.
func TestStatusReaches(t *testing.T) {
	tests := []struct {
		name   string
		status schema.HealthStatus
		gate   schema.HealthStatus
		want   bool
	}{
		{"critical reaches critical", schema.CriticalStatus, schema.CriticalStatus, true},
		{"critical reaches warning", schema.CriticalStatus, schema.WarningStatus, true},
		{"warning misses critical", schema.WarningStatus, schema.CriticalStatus, false},
		{"warning reaches warning", schema.WarningStatus, schema.WarningStatus, true},
		{"good misses warning", schema.GoodStatus, schema.WarningStatus, false},
		{"good reaches good", schema.GoodStatus, schema.GoodStatus, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusReaches(tt.status, tt.gate))
		})
	}
}
