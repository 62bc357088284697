package core

import (
	"time"

	"github.com/dorascope/dorascope/schema"
)

// deployWindow bounds how long after a merge a deployment can still be
// attributed to that pull request.
const deployWindow = 24 * time.Hour

// LeadTime computes the mean lead time for changes in hours.
//
// Only merged pull requests count. Each one is matched to the earliest
// deployment created inside [mergedAt, mergedAt+24h] and contributes its
// merge-to-deploy hours. A pull request with no deployment in that window
// contributes its open-to-merge hours instead, which keeps the metric defined
// when deployment telemetry is missing. Returns 0 when nothing merged.
func LeadTime(prs []schema.PullRequest, deployments []schema.Deployment) float64 {
	var total float64
	var count int

	for i := range prs {
		pr := &prs[i]
		if pr.MergedAt == nil {
			continue
		}

		if dep := earliestDeploymentAfter(*pr.MergedAt, deployments); dep != nil {
			total += dep.CreatedAt.Sub(*pr.MergedAt).Hours()
		} else {
			total += pr.MergedAt.Sub(pr.CreatedAt).Hours()
		}
		count++
	}

	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// earliestDeploymentAfter returns the earliest deployment created inside
// [merged, merged+deployWindow], or nil when none qualifies. Ties on creation
// time resolve to the first one seen.
func earliestDeploymentAfter(merged time.Time, deployments []schema.Deployment) *schema.Deployment {
	cutoff := merged.Add(deployWindow)

	var best *schema.Deployment
	for i := range deployments {
		dep := &deployments[i]
		if dep.CreatedAt.Before(merged) || dep.CreatedAt.After(cutoff) {
			continue
		}
		if best == nil || dep.CreatedAt.Before(best.CreatedAt) {
			best = dep
		}
	}
	return best
}
