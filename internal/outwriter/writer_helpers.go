package outwriter

import (
	"time"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
)

// noSignalCell marks a table or CSV cell whose metric had no data to compute.
const noSignalCell = "-"

// metricDisplayName returns the display name for a metric key, falling back to
// the raw key for anything unknown.
func metricDisplayName(key schema.MetricKey) string {
	if name, ok := schema.GetMetricDisplayNames()[key]; ok {
		return name
	}
	return string(key)
}

// metricUnit returns the unit suffix for a metric key. Failure rate is a
// percentage; every other metric is measured in hours.
func metricUnit(key schema.MetricKey) string {
	if key == schema.FailureRateMetric {
		return "%"
	}
	return "h"
}

// formatNullable renders an optional metric value, with a unit suffix when the
// value is present.
func formatNullable(value *float64, fmtFloat func(float64) string, unit string) string {
	if value == nil {
		return noSignalCell
	}
	return fmtFloat(*value) + unit
}

// tierLabel renders a benchmark tier, colored for terminals when enabled.
// An empty tier means the metric had no signal to classify.
func tierLabel(tier schema.DoraTier, useColors bool) string {
	if tier == "" {
		return noSignalCell
	}
	if useColors {
		return contract.GetColorTierLabel(tier)
	}
	return contract.GetPlainTierLabel(tier)
}

// statusLabel renders a health status, colored for terminals when enabled.
func statusLabel(status schema.HealthStatus, useColors bool) string {
	if useColors {
		return contract.GetColorStatusLabel(status)
	}
	return contract.GetPlainStatusLabel(status)
}

// nullableStatusLabel renders an optional health status. A nil status means
// the metric had no value to evaluate.
func nullableStatusLabel(status *schema.HealthStatus, useColors bool) string {
	if status == nil {
		return noSignalCell
	}
	return statusLabel(*status, useColors)
}

// formatDate renders a calendar date cell. Zero times mean no record carried
// a date.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return noSignalCell
	}
	return t.Format(time.DateOnly)
}
