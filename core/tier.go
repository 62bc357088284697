package core

import "github.com/dorascope/dorascope/schema"

// Benchmark cut points from the industry DORA research. These are fixed
// constants, separate from the configurable health thresholds.
const (
	eliteFrequencyRate  = 1.0      // At least daily
	highFrequencyRate   = 1.0 / 7  // At least weekly
	mediumFrequencyRate = 1.0 / 30 // At least monthly

	eliteHours  = 1.0      // Under an hour
	highHours   = 24.0     // Under a day
	mediumHours = 24.0 * 7 // Under a week

	highFailurePercent   = 15.0
	mediumFailurePercent = 30.0
)

// ClassifyDeploymentFrequency maps a deployments-per-day rate to its
// benchmark tier.
func ClassifyDeploymentFrequency(ratePerDay float64) schema.DoraTier {
	switch {
	case ratePerDay >= eliteFrequencyRate:
		return schema.EliteTier
	case ratePerDay >= highFrequencyRate:
		return schema.HighTier
	case ratePerDay >= mediumFrequencyRate:
		return schema.MediumTier
	default:
		return schema.LowTier
	}
}

// ClassifyLeadTime maps lead time hours to its benchmark tier.
func ClassifyLeadTime(hours float64) schema.DoraTier {
	return classifyHours(hours)
}

// ClassifyTimeToRecovery maps recovery hours to its benchmark tier.
func ClassifyTimeToRecovery(hours float64) schema.DoraTier {
	return classifyHours(hours)
}

// ClassifyChangeFailureRate maps a failure percentage to its benchmark tier.
// The benchmark does not separate elite from high on this metric, so the best
// achievable tier here is high.
func ClassifyChangeFailureRate(percent float64) schema.DoraTier {
	switch {
	case percent <= highFailurePercent:
		return schema.HighTier
	case percent <= mediumFailurePercent:
		return schema.MediumTier
	default:
		return schema.LowTier
	}
}

// classifyHours applies the hour cut points shared by lead time and recovery
// time.
func classifyHours(hours float64) schema.DoraTier {
	switch {
	case hours < eliteHours:
		return schema.EliteTier
	case hours < highHours:
		return schema.HighTier
	case hours < mediumHours:
		return schema.MediumTier
	default:
		return schema.LowTier
	}
}
