package core

import (
	"sort"
	"time"

	"github.com/dorascope/dorascope/schema"
)

// OverallSummaryName labels the cross-repository roll-up row.
const OverallSummaryName = "overall"

// AggregateMultiRepo groups metric records by repository, summarizes each
// group, and rolls the per-repository means up into one overall row. The
// roll-up is an unweighted mean of means, so a small repository counts as
// much as a busy one. Repositories come back sorted by name.
func AggregateMultiRepo(metrics []schema.DevOpsMetrics) schema.MultiRepoSummary {
	groups := make(map[string][]schema.DevOpsMetrics)
	for _, m := range metrics {
		groups[m.Repository] = append(groups[m.Repository], m)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]schema.RepositorySummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, summarizeRepository(name, groups[name]))
	}

	return schema.MultiRepoSummary{
		Repositories: summaries,
		Overall:      summarizeOverall(summaries),
	}
}

// summarizeRepository folds one repository's records into its summary row.
// Recovery time averages only the records that carried one.
func summarizeRepository(name string, records []schema.DevOpsMetrics) schema.RepositorySummary {
	var deploys, leads, rates []float64
	var recoveries []*float64
	var last time.Time

	for i := range records {
		record := &records[i]
		deploys = append(deploys, float64(record.DeploymentCount))
		leads = append(leads, record.LeadTimeForChangesHours)
		rates = append(rates, record.ChangeFailureRate)
		recoveries = append(recoveries, record.MeanTimeToRecoveryHours)
		if record.Date.After(last) {
			last = record.Date
		}
	}

	return schema.RepositorySummary{
		Repository:           name,
		DataPointCount:       len(records),
		AvgDeploymentCount:   meanOf(deploys),
		AvgLeadTimeHours:     meanOf(leads),
		AvgChangeFailureRate: meanOf(rates),
		AvgRecoveryHours:     meanOfNullable(recoveries),
		LastUpdated:          last,
	}
}

// summarizeOverall averages the per-repository averages once more. The data
// point count sums across repositories and LastUpdated takes the latest.
func summarizeOverall(summaries []schema.RepositorySummary) schema.RepositorySummary {
	overall := schema.RepositorySummary{Repository: OverallSummaryName}

	var deploys, leads, rates []float64
	var recoveries []*float64
	for i := range summaries {
		summary := &summaries[i]
		overall.DataPointCount += summary.DataPointCount
		deploys = append(deploys, summary.AvgDeploymentCount)
		leads = append(leads, summary.AvgLeadTimeHours)
		rates = append(rates, summary.AvgChangeFailureRate)
		recoveries = append(recoveries, summary.AvgRecoveryHours)
		if summary.LastUpdated.After(overall.LastUpdated) {
			overall.LastUpdated = summary.LastUpdated
		}
	}

	overall.AvgDeploymentCount = meanOf(deploys)
	overall.AvgLeadTimeHours = meanOf(leads)
	overall.AvgChangeFailureRate = meanOf(rates)
	overall.AvgRecoveryHours = meanOfNullable(recoveries)
	return overall
}
