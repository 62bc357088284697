// Package core has core logic for metric composition, classification and
// report orchestration.
package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/internal/outwriter"
	"github.com/dorascope/dorascope/schema"
)

// ExecuteReport runs the report flow end to end and renders the result.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, provider contract.EventProvider, mgr contract.HistoryManager) error {
	start := time.Now()
	result, err := GetReportResults(ctx, cfg, provider, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteReport(result, cfg, duration)
}

// ExecuteOverview runs the multi-repository aggregation and renders the result.
// It serves as the main entry point for the 'overview' command.
func ExecuteOverview(ctx context.Context, cfg *contract.Config, provider contract.EventProvider, mgr contract.HistoryManager) error {
	start := time.Now()
	result, err := GetOverviewResults(ctx, cfg, provider, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteOverview(result, cfg, duration)
}

// ExecuteTrends runs the weekly trend flow and renders the result.
// It serves as the main entry point for the 'trends' command.
func ExecuteTrends(ctx context.Context, cfg *contract.Config, provider contract.EventProvider, mgr contract.HistoryManager) error {
	start := time.Now()
	result, err := GetTrendsResults(ctx, cfg, provider, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteTrends(result, cfg, duration)
}

// ExecuteHealth evaluates the configured thresholds, renders the result,
// fires the optional webhook and gates on --fail-on. The returned gate error
// makes the command exit non-zero, which is what CI pipelines key on.
func ExecuteHealth(ctx context.Context, cfg *contract.Config, provider contract.EventProvider, mgr contract.HistoryManager, notifier contract.Notifier) error {
	start := time.Now()
	result, err := GetHealthResults(ctx, cfg, provider, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	if err := outwriter.NewOutWriter().WriteHealth(result, cfg, duration); err != nil {
		return err
	}

	// Delivery failures must not flip the gate
	if notifier != nil {
		if err := notifier.Send(ctx, result); err != nil {
			contract.LogWarn("Webhook delivery failed", err)
		}
	}

	if cfg.FailOn != "" && statusReaches(result.Overall, cfg.FailOn) {
		return fmt.Errorf("overall health is %s (gate: %s)", result.Overall, cfg.FailOn)
	}
	return nil
}

// ExecuteBenchmarks displays the benchmark tier definitions and the active
// health thresholds. This is a static display that does not fetch any events.
func ExecuteBenchmarks(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteBenchmarks(cfg.HealthThresholds, cfg)
}

// GetReportResults fetches events for every configured repository, composes
// the metric record per repository, classifies it against the benchmark and
// records it into the history store when one is configured.
func GetReportResults(ctx context.Context, cfg *contract.Config, provider contract.EventProvider, mgr contract.HistoryManager) (*schema.ReportResult, error) {
	if len(cfg.Repos) == 0 {
		return nil, errors.New("no repositories specified. Pass owner/name arguments or set --repos")
	}
	if !shouldSuppressHeader(ctx) {
		logReportHeader(cfg)
	}

	bundles, err := fetchAllRepos(ctx, cfg, provider)
	if err != nil {
		return nil, err
	}

	reports := make([]schema.RepositoryReport, 0, len(bundles))
	for i := range bundles {
		reports = append(reports, buildRepositoryReport(cfg, &bundles[i]))
	}

	recordHistory(mgr, reports)

	return &schema.ReportResult{
		Reports:    reports,
		PeriodDays: cfg.PeriodDays,
		Date:       cfg.Date,
	}, nil
}

// GetOverviewResults aggregates per-repository summaries, over stored history
// with --from-history or over a fresh report run otherwise. In history mode an
// empty repository list covers every repository the store knows about.
func GetOverviewResults(ctx context.Context, cfg *contract.Config, provider contract.EventProvider, mgr contract.HistoryManager) (schema.MultiRepoSummary, error) {
	if cfg.FromHistory {
		records, err := historyRecords(mgr, cfg.Repos, time.Time{})
		if err != nil {
			return schema.MultiRepoSummary{}, err
		}
		if len(records) == 0 {
			return schema.MultiRepoSummary{}, errors.New("no stored metrics found; run 'dorascope report' with a history backend first")
		}
		return AggregateMultiRepo(records), nil
	}

	result, err := GetReportResults(WithSuppressHeader(ctx), cfg, provider, mgr)
	if err != nil {
		return schema.MultiRepoSummary{}, err
	}
	records := make([]schema.DevOpsMetrics, 0, len(result.Reports))
	for i := range result.Reports {
		records = append(records, result.Reports[i].Metrics)
	}
	return AggregateMultiRepo(records), nil
}

// GetTrendsResults produces the weekly trend rows with their week-over-week
// change column. Stored history is preferred as the source; when the store is
// missing or empty the window is composed from fetched events instead.
func GetTrendsResults(ctx context.Context, cfg *contract.Config, provider contract.EventProvider, mgr contract.HistoryManager) (schema.TrendResult, error) {
	if len(cfg.Repos) == 0 {
		return schema.TrendResult{}, errors.New("no repositories specified. Pass owner/name arguments or set --repos")
	}
	weeks := cfg.TrendWeeks
	if weeks < 1 {
		weeks = DefaultTrendWeeks
	}

	records, err := historyRecords(mgr, cfg.Repos, cfg.Date.AddDate(0, 0, -7*weeks))
	if err != nil {
		contract.LogWarn("History lookup failed", err)
		records = nil
	}
	if len(records) == 0 {
		records, err = composeWeeklyHistory(ctx, cfg, provider, weeks)
		if err != nil {
			return schema.TrendResult{}, err
		}
	}

	trendWeeks := WeeklyTrends(records, weeks)
	return schema.TrendResult{
		Repositories: cfg.Repos,
		Weeks:        trendWeeks,
		Changes:      TrendChanges(trendWeeks),
	}, nil
}

// GetHealthResults evaluates every repository report against the active
// thresholds and reduces per-repository statuses to an overall one.
func GetHealthResults(ctx context.Context, cfg *contract.Config, provider contract.EventProvider, mgr contract.HistoryManager) (schema.HealthResult, error) {
	result, err := GetReportResults(ctx, cfg, provider, mgr)
	if err != nil {
		return schema.HealthResult{}, err
	}
	return EvaluateReportHealth(result, cfg.HealthThresholds), nil
}

// EvaluateReportHealth resolves the health status of every report against the
// threshold map. Metrics without a configured threshold are skipped.
func EvaluateReportHealth(result *schema.ReportResult, thresholds map[schema.MetricKey]schema.Threshold) schema.HealthResult {
	health := schema.HealthResult{Reports: make([]schema.HealthReport, 0, len(result.Reports))}
	worst := make([]*schema.HealthStatus, 0, len(result.Reports))

	for i := range result.Reports {
		report := evaluateRepositoryHealth(&result.Reports[i], thresholds)
		overall := report.Overall
		worst = append(worst, &overall)
		health.Reports = append(health.Reports, report)
	}
	health.Overall = SelectWorstStatus(worst)
	return health
}

// evaluateRepositoryHealth checks one repository's composed metrics against
// the thresholds. Recovery and cycle time keep their nil-means-no-signal
// semantics all the way into the evaluated statuses.
func evaluateRepositoryHealth(report *schema.RepositoryReport, thresholds map[schema.MetricKey]schema.Threshold) schema.HealthReport {
	metrics := report.Metrics
	lead := metrics.LeadTimeForChangesHours
	rate := metrics.ChangeFailureRate

	values := map[schema.MetricKey]*float64{
		schema.LeadTimeMetric:    &lead,
		schema.FailureRateMetric: &rate,
		schema.RecoveryMetric:    metrics.MeanTimeToRecoveryHours,
		schema.CycleTimeMetric:   metrics.CycleTimeHours,
	}

	out := schema.HealthReport{
		Repository: metrics.Repository,
		Metrics:    make(map[schema.MetricKey]schema.MetricHealth, len(thresholds)),
	}
	statuses := make([]*schema.HealthStatus, 0, len(thresholds))
	for _, key := range schema.AllMetricKeys {
		threshold, ok := thresholds[key]
		if !ok {
			continue
		}
		status := EvaluateMetric(values[key], threshold)
		out.Metrics[key] = schema.MetricHealth{Value: values[key], Threshold: threshold, Status: status}
		statuses = append(statuses, status)
	}
	out.Overall = SelectWorstStatus(statuses)
	return out
}

// fetchAllRepos collects event bundles for every repository using a worker
// pool. Repositories that fail to fetch are skipped with a warning; the
// bundles come back in configured order regardless of completion order.
func fetchAllRepos(ctx context.Context, cfg *contract.Config, provider contract.EventProvider) ([]schema.EventBundle, error) {
	repoCh := make(chan string, len(cfg.Repos))
	bundleCh := make(chan schema.EventBundle, len(cfg.Repos))
	var wg sync.WaitGroup

	workers := min(cfg.Workers, len(cfg.Repos))
	if workers < 1 {
		workers = 1
	}
	since, until := cfg.GetWindowStart(), cfg.GetWindowEnd()

	// Start worker pool
	for range workers {
		wg.Go(func() {
			for repo := range repoCh {
				bundle, err := provider.FetchEvents(ctx, repo, since, until)
				if err != nil {
					contract.LogWarn(fmt.Sprintf("Skipping %s", repo), err)
					continue
				}
				bundleCh <- bundle
			}
		})
	}

	// Send repositories to worker channel
	for _, repo := range cfg.Repos {
		repoCh <- repo
	}
	close(repoCh)

	// Wait for all workers to finish fetching
	wg.Wait()
	close(bundleCh)

	bundles := make([]schema.EventBundle, 0, len(cfg.Repos))
	for bundle := range bundleCh {
		bundles = append(bundles, bundle)
	}
	if len(bundles) == 0 {
		return nil, errors.New("no repository data fetched")
	}

	// Restore configured order; the pool completes in arbitrary order
	order := make(map[string]int, len(cfg.Repos))
	for i, repo := range cfg.Repos {
		order[repo] = i
	}
	sort.Slice(bundles, func(i, j int) bool {
		return order[bundles[i].Repository] < order[bundles[j].Repository]
	})
	return bundles, nil
}

// buildRepositoryReport composes the metric record for one bundle and attaches
// tiers, event counts and the optional detail stats.
func buildRepositoryReport(cfg *contract.Config, bundle *schema.EventBundle) schema.RepositoryReport {
	metrics := ComposeRepositoryMetrics(bundle.Repository, cfg.Date, bundle.PullRequests, bundle.WorkflowRuns, bundle.Deployments, cfg.PeriodDays)

	report := schema.RepositoryReport{
		Metrics: metrics,
		Tiers:   classifyMetrics(&metrics, cfg.PeriodDays),
		Counts: schema.EventCounts{
			PullRequests: len(bundle.PullRequests),
			Deployments:  len(bundle.Deployments),
			WorkflowRuns: len(bundle.WorkflowRuns),
			Issues:       len(bundle.Issues),
		},
		IssuesClosed: countClosedIssues(bundle.Issues),
	}
	if cfg.Detail {
		stats := ComposePullRequestStats(bundle.PullRequests)
		report.Stats = &stats
	}
	return report
}

// classifyMetrics resolves the benchmark tier for each composed metric. The
// frequency tier classifies on the per-day rate; recovery stays untiered when
// it had no signal.
func classifyMetrics(metrics *schema.DevOpsMetrics, periodDays int) schema.TierSet {
	tiers := schema.TierSet{
		DeploymentFrequency: ClassifyDeploymentFrequency(float64(metrics.DeploymentCount) / float64(periodDays)),
		LeadTime:            ClassifyLeadTime(metrics.LeadTimeForChangesHours),
		ChangeFailureRate:   ClassifyChangeFailureRate(metrics.ChangeFailureRate),
	}
	if metrics.MeanTimeToRecoveryHours != nil {
		tiers.TimeToRecovery = ClassifyTimeToRecovery(*metrics.MeanTimeToRecoveryHours)
	}
	return tiers
}

// countClosedIssues tallies the issues with a recorded close time.
func countClosedIssues(issues []schema.Issue) int {
	var closed int
	for i := range issues {
		if issues[i].Closed() {
			closed++
		}
	}
	return closed
}

// recordHistory upserts each composed record into the history store when one
// is configured. Tracking failures warn and never fail the report.
func recordHistory(mgr contract.HistoryManager, reports []schema.RepositoryReport) {
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}
	for i := range reports {
		if err := store.UpsertMetrics(reports[i].Metrics); err != nil {
			contract.LogWarn(fmt.Sprintf("History tracking failed for %s", reports[i].Metrics.Repository), err)
		}
	}
}

// historyRecords loads stored metrics since the cutoff. A missing manager or
// store yields no records rather than an error, so callers can fall back.
func historyRecords(mgr contract.HistoryManager, repos []string, since time.Time) ([]schema.DevOpsMetrics, error) {
	if mgr == nil {
		return nil, nil
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return nil, nil
	}
	return store.GetMetricsSince(repos, since)
}

// composeWeeklyHistory fetches the full trend window once per repository and
// composes one 7-day record per ISO week, so trends work without a populated
// history store. Records are dated on the Monday beginning their week.
func composeWeeklyHistory(ctx context.Context, cfg *contract.Config, provider contract.EventProvider, weeks int) ([]schema.DevOpsMetrics, error) {
	oldestStart := StartOfISOWeek(cfg.Date).AddDate(0, 0, -7*(weeks-1))

	var records []schema.DevOpsMetrics
	for _, repo := range cfg.Repos {
		bundle, err := provider.FetchEvents(ctx, repo, oldestStart, cfg.Date)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", repo), err)
			continue
		}
		for w := range weeks {
			weekStart := oldestStart.AddDate(0, 0, 7*w)
			weekBundle := bundleForWeek(&bundle, weekStart, weekStart.AddDate(0, 0, 7))
			records = append(records, ComposeRepositoryMetrics(repo, weekStart, weekBundle.PullRequests, weekBundle.WorkflowRuns, weekBundle.Deployments, 7))
		}
	}
	if len(records) == 0 {
		return nil, errors.New("no repository data fetched")
	}
	return records, nil
}

// bundleForWeek keeps the events created on or after start and before end.
// Issues are dropped because no weekly calculator reads them.
func bundleForWeek(bundle *schema.EventBundle, start, end time.Time) schema.EventBundle {
	out := schema.EventBundle{Repository: bundle.Repository}
	for _, pr := range bundle.PullRequests {
		if !pr.CreatedAt.Before(start) && pr.CreatedAt.Before(end) {
			out.PullRequests = append(out.PullRequests, pr)
		}
	}
	for _, deployment := range bundle.Deployments {
		if !deployment.CreatedAt.Before(start) && deployment.CreatedAt.Before(end) {
			out.Deployments = append(out.Deployments, deployment)
		}
	}
	for _, run := range bundle.WorkflowRuns {
		if !run.CreatedAt.Before(start) && run.CreatedAt.Before(end) {
			out.WorkflowRuns = append(out.WorkflowRuns, run)
		}
	}
	return out
}

// statusRank orders health statuses from best to worst.
func statusRank(status schema.HealthStatus) int {
	switch status {
	case schema.CriticalStatus:
		return 2
	case schema.WarningStatus:
		return 1
	default:
		return 0
	}
}

// statusReaches reports whether status is at least as bad as the gate.
func statusReaches(status, gate schema.HealthStatus) bool {
	return statusRank(status) >= statusRank(gate)
}
