package core

import (
	"testing"

	"github.com/dorascope/dorascope/schema"
	"github.com/stretchr/testify/assert"
)

// TestClassifyDeploymentFrequency tests the frequency tier breakpoints.
func TestClassifyDeploymentFrequency(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want schema.DoraTier
	}{
		{"multiple per day", 3, schema.EliteTier},
		{"exactly daily", 1, schema.EliteTier},
		{"weekly", 1.0 / 7, schema.HighTier},
		{"every two weeks", 1.0 / 14, schema.MediumTier},
		{"exactly monthly", 1.0 / 30, schema.MediumTier},
		{"rarely", 1.0 / 90, schema.LowTier},
		{"never", 0, schema.LowTier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDeploymentFrequency(tt.rate))
		})
	}
}

// TestClassifyHours tests the hour tiers shared by lead time and recovery.
func TestClassifyHours(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  schema.DoraTier
	}{
		{"under an hour", 0.5, schema.EliteTier},
		{"exactly one hour", 1, schema.HighTier},
		{"under a day", 23, schema.HighTier},
		{"exactly one day", 24, schema.MediumTier},
		{"under a week", 100, schema.MediumTier},
		{"exactly one week", 168, schema.LowTier},
		{"beyond a week", 500, schema.LowTier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLeadTime(tt.hours))
			assert.Equal(t, tt.want, ClassifyTimeToRecovery(tt.hours))
		})
	}
}

// TestClassifyChangeFailureRate tests the failure tiers, where high is the
// best achievable outcome.
func TestClassifyChangeFailureRate(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    schema.DoraTier
	}{
		{"zero failures", 0, schema.HighTier},
		{"exactly fifteen", 15, schema.HighTier},
		{"just above fifteen", 15.1, schema.MediumTier},
		{"exactly thirty", 30, schema.MediumTier},
		{"above thirty", 31, schema.LowTier},
		{"everything fails", 100, schema.LowTier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyChangeFailureRate(tt.percent))
		})
	}
}
