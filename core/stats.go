package core

import "sort"

// meanOf returns the arithmetic mean of values, or 0 for an empty slice.
func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// meanOrNil returns the arithmetic mean of values, or nil for an empty slice.
// Every filter-then-mean aggregation funnels through here so the nil handling
// cannot drift between calculators.
func meanOrNil(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	mean := meanOf(values)
	return &mean
}

// meanOfNullable averages the non-nil samples, or nil when none exist.
func meanOfNullable(values []*float64) *float64 {
	var concrete []float64
	for _, v := range values {
		if v != nil {
			concrete = append(concrete, *v)
		}
	}
	return meanOrNil(concrete)
}

// medianOf returns the median of values, or 0 for an empty slice. The input
// is left unmodified.
func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
