package core

import "github.com/dorascope/dorascope/schema"

// Deployment rate breakpoints, in deployments per day.
const (
	dailyRate   = 1.0
	weeklyRate  = 1.0 / 7
	monthlyRate = 1.0 / 30
)

// DeploymentFrequency counts successful deployments over the period and
// buckets the resulting per-day rate into a cadence class.
//
// Deployments are the preferred source. The presence of any deployment data
// at all suppresses the workflow-run fallback, even when the runs would count
// differently. With no events of either kind the result is {0, yearly}.
func DeploymentFrequency(deployments []schema.Deployment, runs []schema.WorkflowRun, periodDays int) schema.FrequencyResult {
	var count int
	if len(deployments) > 0 {
		for i := range deployments {
			if deployments[i].Status == schema.StatusSuccess {
				count++
			}
		}
	} else {
		for i := range runs {
			if runs[i].Conclusion == schema.StatusSuccess {
				count++
			}
		}
	}

	var rate float64
	if periodDays > 0 {
		rate = float64(count) / float64(periodDays)
	}

	return schema.FrequencyResult{
		Count:     count,
		Frequency: classifyRate(rate),
	}
}

// classifyRate maps a deployments-per-day rate onto a cadence class.
func classifyRate(rate float64) schema.FrequencyClass {
	switch {
	case rate >= dailyRate:
		return schema.DailyFrequency
	case rate >= weeklyRate:
		return schema.WeeklyFrequency
	case rate >= monthlyRate:
		return schema.MonthlyFrequency
	default:
		return schema.YearlyFrequency
	}
}
