package core

import "github.com/dorascope/dorascope/schema"

// EvaluateMetric resolves one metric value against its threshold. A nil value
// means the metric had no signal and yields a nil status. Lower is better: at
// or below Good is good, at or below Warning is warning, beyond is critical.
func EvaluateMetric(value *float64, threshold schema.Threshold) *schema.HealthStatus {
	if value == nil {
		return nil
	}

	status := schema.CriticalStatus
	switch {
	case *value <= threshold.Good:
		status = schema.GoodStatus
	case *value <= threshold.Warning:
		status = schema.WarningStatus
	}
	return &status
}

// SelectWorstStatus reduces many statuses to the single worst one. Nil
// entries are ignored; an empty or all-nil input resolves to good.
func SelectWorstStatus(statuses []*schema.HealthStatus) schema.HealthStatus {
	worst := schema.GoodStatus
	for _, status := range statuses {
		if status == nil {
			continue
		}
		switch *status {
		case schema.CriticalStatus:
			return schema.CriticalStatus
		case schema.WarningStatus:
			worst = schema.WarningStatus
		}
	}
	return worst
}

// MetricHealthInput pairs one metric value with its threshold for overall
// evaluation.
type MetricHealthInput struct {
	Value     *float64
	Threshold schema.Threshold
}

// EvaluateOverallHealth evaluates every metric and reduces the results to the
// single worst status. Map iteration order does not matter because the
// reduction is order-independent.
func EvaluateOverallHealth(metrics map[schema.MetricKey]MetricHealthInput) schema.HealthStatus {
	statuses := make([]*schema.HealthStatus, 0, len(metrics))
	for _, metric := range metrics {
		statuses = append(statuses, EvaluateMetric(metric.Value, metric.Threshold))
	}
	return SelectWorstStatus(statuses)
}
