package core

import (
	"sort"
	"time"

	"github.com/dorascope/dorascope/schema"
)

// recoveryEvent is the minimal view of a deployment or workflow run needed
// for failure-to-success pairing.
type recoveryEvent struct {
	at      time.Time
	failed  bool
	success bool
}

// MeanTimeToRecovery computes the mean hours between each failure and the
// next success in the chosen event source, or nil when no failure ever
// recovered.
//
// Events are walked in creation order. Every failure still open when a
// success arrives closes at that success and contributes its own duration, so
// clustered failures all resolve on the same recovery. Failures with no later
// success stay unresolved and contribute nothing. Deployments are preferred
// over workflow runs under the same source rule as the other calculators.
func MeanTimeToRecovery(deployments []schema.Deployment, runs []schema.WorkflowRun) *float64 {
	events := collectRecoveryEvents(deployments, runs)
	sort.Slice(events, func(i, j int) bool { return events[i].at.Before(events[j].at) })

	var open []time.Time
	var durations []float64
	for _, event := range events {
		switch {
		case event.failed:
			open = append(open, event.at)
		case event.success:
			for _, failedAt := range open {
				durations = append(durations, event.at.Sub(failedAt).Hours())
			}
			open = open[:0]
		}
	}

	return meanOrNil(durations)
}

// collectRecoveryEvents flattens the chosen event source into pairing events.
func collectRecoveryEvents(deployments []schema.Deployment, runs []schema.WorkflowRun) []recoveryEvent {
	if len(deployments) > 0 {
		events := make([]recoveryEvent, 0, len(deployments))
		for i := range deployments {
			dep := &deployments[i]
			events = append(events, recoveryEvent{
				at:      dep.CreatedAt,
				failed:  isFailureState(dep.Status),
				success: dep.Status == schema.StatusSuccess,
			})
		}
		return events
	}

	events := make([]recoveryEvent, 0, len(runs))
	for i := range runs {
		run := &runs[i]
		events = append(events, recoveryEvent{
			at:      run.CreatedAt,
			failed:  isFailureState(run.Conclusion),
			success: run.Conclusion == schema.StatusSuccess,
		})
	}
	return events
}
