package core

import (
	"time"

	"github.com/dorascope/dorascope/schema"
)

// ComposeRepositoryMetrics runs every calculator against one repository's
// events and assembles the period record. The caller supplies the period end
// date and length; nothing here reads the clock, so identical inputs always
// produce identical records. With no events at all the result is a zeroed
// record with nil recovery and cycle times.
func ComposeRepositoryMetrics(repository string, date time.Time, prs []schema.PullRequest, runs []schema.WorkflowRun, deployments []schema.Deployment, periodDays int) schema.DevOpsMetrics {
	frequency := DeploymentFrequency(deployments, runs, periodDays)
	failures := ChangeFailureRate(deployments, runs)

	return schema.DevOpsMetrics{
		Date:                    date,
		Repository:              repository,
		DeploymentCount:         frequency.Count,
		DeploymentFrequency:     frequency.Frequency,
		LeadTimeForChangesHours: LeadTime(prs, deployments),
		TotalDeployments:        failures.Total,
		FailedDeployments:       failures.Failed,
		ChangeFailureRate:       failures.Rate,
		MeanTimeToRecoveryHours: MeanTimeToRecovery(deployments, runs),
		CycleTimeHours:          cycleTime(prs),
	}
}

// cycleTime returns the mean open-to-merge hours over merged pull requests,
// or nil when none merged.
func cycleTime(prs []schema.PullRequest) *float64 {
	var hours []float64
	for i := range prs {
		pr := &prs[i]
		if pr.MergedAt == nil {
			continue
		}
		hours = append(hours, pr.MergedAt.Sub(pr.CreatedAt).Hours())
	}
	return meanOrNil(hours)
}

// ComposePullRequestStats derives the secondary pull request indicators from
// the same event list the calculators see. Each mean is nil when no pull
// request qualifies for it.
func ComposePullRequestStats(prs []schema.PullRequest) schema.PullRequestStats {
	var cycle, coding, reviewWait, sizes []float64
	var merged, reviewed, reworked int

	for i := range prs {
		pr := &prs[i]
		if pr.MergedAt != nil {
			merged++
			cycle = append(cycle, pr.MergedAt.Sub(pr.CreatedAt).Hours())
			sizes = append(sizes, float64(pr.Additions+pr.Deletions))
		}
		if pr.FirstCommitAt != nil {
			coding = append(coding, pr.CreatedAt.Sub(*pr.FirstCommitAt).Hours())
		}
		if pr.FirstReviewAt != nil {
			reviewWait = append(reviewWait, pr.FirstReviewAt.Sub(pr.CreatedAt).Hours())
		}
		if pr.ReviewCount > 0 {
			reviewed++
			if pr.ChangesRequested > 0 {
				reworked++
			}
		}
	}

	stats := schema.PullRequestStats{
		MergedPRCount:      merged,
		CycleTimeHours:     meanOrNil(cycle),
		CodingTimeHours:    meanOrNil(coding),
		ReviewLatencyHours: meanOrNil(reviewWait),
		AvgPRSizeLines:     meanOrNil(sizes),
	}
	if len(sizes) > 0 {
		median := medianOf(sizes)
		stats.MedianPRSizeLines = &median
	}
	if reviewed > 0 {
		rate := float64(reworked) / float64(reviewed) * 100
		stats.ReworkRatePercent = &rate
	}
	return stats
}
