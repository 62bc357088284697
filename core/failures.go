package core

import "github.com/dorascope/dorascope/schema"

// ChangeFailureRate computes the share of deployments that ended in failure
// or error, as a percentage of the total. Workflow run conclusions stand in
// when no deployment data exists. A zero total yields a zero rate rather than
// an error.
func ChangeFailureRate(deployments []schema.Deployment, runs []schema.WorkflowRun) schema.FailureRateResult {
	var total, failed int

	if len(deployments) > 0 {
		total = len(deployments)
		for i := range deployments {
			if isFailureState(deployments[i].Status) {
				failed++
			}
		}
	} else {
		total = len(runs)
		for i := range runs {
			if isFailureState(runs[i].Conclusion) {
				failed++
			}
		}
	}

	result := schema.FailureRateResult{Total: total, Failed: failed}
	if total > 0 {
		result.Rate = float64(failed) / float64(total) * 100
	}
	return result
}

// isFailureState reports whether a status or conclusion counts as a failure.
// Cancelled and skipped outcomes are neither failures nor successes.
func isFailureState(state string) bool {
	return state == schema.StatusFailure || state == schema.StatusError
}
