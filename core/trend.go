package core

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dorascope/dorascope/schema"
)

// DefaultTrendWeeks is the number of ISO weeks a trend report covers unless
// the caller asks for a different span.
const DefaultTrendWeeks = 8

// flatChangeMarker is emitted when a week-over-week change stays under one
// percent in magnitude.
const flatChangeMarker = "横ばい"

// WeeklyTrends buckets metric records by the ISO week of their date and
// aggregates each of the most recent weekCount weeks present in the data,
// newest first.
//
// Weeks run Monday through Sunday per ISO 8601 and are keyed like "2026-W07".
// Total deployments sum DeploymentCount; lead time averages only strictly
// positive values because zero means the record had no merge signal; failure
// rate and cycle time average their non-nil samples. A weekCount below one
// falls back to DefaultTrendWeeks.
func WeeklyTrends(metrics []schema.DevOpsMetrics, weekCount int) []schema.WeeklyTrendData {
	if weekCount < 1 {
		weekCount = DefaultTrendWeeks
	}

	buckets := make(map[string][]schema.DevOpsMetrics)
	for _, m := range metrics {
		key := ISOWeekKey(m.Date)
		buckets[key] = append(buckets[key], m)
	}

	// Week keys are zero-padded, so lexicographic order is chronological.
	weeks := make([]string, 0, len(buckets))
	for week := range buckets {
		weeks = append(weeks, week)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(weeks)))
	if len(weeks) > weekCount {
		weeks = weeks[:weekCount]
	}

	trends := make([]schema.WeeklyTrendData, 0, len(weeks))
	for _, week := range weeks {
		trends = append(trends, aggregateWeek(week, buckets[week]))
	}
	return trends
}

// aggregateWeek folds one week's records into a single trend row.
func aggregateWeek(week string, records []schema.DevOpsMetrics) schema.WeeklyTrendData {
	row := schema.WeeklyTrendData{Week: week}

	var leads, rates []float64
	var cycles []*float64
	for i := range records {
		record := &records[i]
		row.TotalDeployments += record.DeploymentCount
		if record.LeadTimeForChangesHours > 0 {
			leads = append(leads, record.LeadTimeForChangesHours)
		}
		rates = append(rates, record.ChangeFailureRate)
		cycles = append(cycles, record.CycleTimeHours)
	}

	row.AvgLeadTimeHours = meanOrNil(leads)
	row.AvgChangeFailureRate = meanOrNil(rates)
	row.AvgCycleTimeHours = meanOfNullable(cycles)
	return row
}

// ISOWeekKey formats the ISO 8601 week containing t, like "2026-W07".
func ISOWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfISOWeek returns midnight on the Monday beginning the ISO week that
// contains t, in t's location.
func StartOfISOWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday is 0
	return day.AddDate(0, 0, -offset)
}

// CalculateChange renders the relative change from previous to current as a
// signed percentage like "+12%". Either operand missing, or a zero previous
// value, yields "-"; changes under one percent in magnitude collapse to the
// flat marker.
func CalculateChange(current, previous *float64) string {
	if current == nil || previous == nil || *previous == 0 {
		return "-"
	}

	percent := (*current - *previous) / *previous * 100
	if math.Abs(percent) < 1 {
		return flatChangeMarker
	}
	return fmt.Sprintf("%+d%%", int(math.Round(percent)))
}

// TrendChanges computes the week-over-week change column for every trend row.
// Rows arrive newest first, so each row compares against the row after it;
// the oldest row has no basis and renders "-" everywhere.
func TrendChanges(weeks []schema.WeeklyTrendData) []schema.TrendChange {
	noBasis := schema.TrendChange{Deployments: "-", LeadTime: "-", FailureRate: "-", CycleTime: "-"}

	changes := make([]schema.TrendChange, len(weeks))
	for i := range weeks {
		if i == len(weeks)-1 {
			changes[i] = noBasis
			continue
		}

		current, previous := &weeks[i], &weeks[i+1]
		currentDeploys := float64(current.TotalDeployments)
		previousDeploys := float64(previous.TotalDeployments)
		changes[i] = schema.TrendChange{
			Deployments: CalculateChange(&currentDeploys, &previousDeploys),
			LeadTime:    CalculateChange(current.AvgLeadTimeHours, previous.AvgLeadTimeHours),
			FailureRate: CalculateChange(current.AvgChangeFailureRate, previous.AvgChangeFailureRate),
			CycleTime:   CalculateChange(current.AvgCycleTimeHours, previous.AvgCycleTimeHours),
		}
	}
	return changes
}
