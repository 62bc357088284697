package schema

import "sync"

var (
	// metricDisplayNamesGlobal maps metric keys to human-readable names.
	metricDisplayNamesGlobal map[MetricKey]string

	// Add a sync.Once to guarantee initialization only happens once
	displayNamesOnce sync.Once
)

// GetMetricDisplayNames returns the metric display name map.
func GetMetricDisplayNames() map[MetricKey]string {
	displayNamesOnce.Do(func() {
		metricDisplayNamesGlobal = map[MetricKey]string{
			LeadTimeMetric:    "Lead Time",
			FailureRateMetric: "Change Failure Rate",
			RecoveryMetric:    "Time to Recovery",
			CycleTimeMetric:   "Cycle Time",
		}
	})
	return metricDisplayNamesGlobal
}
