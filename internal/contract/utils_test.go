package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorascope/dorascope/schema"
)

func TestGetPlainStatusLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    schema.HealthStatus
		expected string
	}{
		{
			name:     "good status",
			input:    schema.GoodStatus,
			expected: GoodValue,
		},
		{
			name:     "warning status",
			input:    schema.WarningStatus,
			expected: WarningValue,
		},
		{
			name:     "critical status",
			input:    schema.CriticalStatus,
			expected: CriticalValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainStatusLabel(tt.input))
		})
	}
}

func TestGetColorStatusLabel(t *testing.T) {
	tests := []struct {
		name   string
		status schema.HealthStatus
		label  string
	}{
		{"good", schema.GoodStatus, GoodValue},
		{"warning", schema.WarningStatus, WarningValue},
		{"critical", schema.CriticalStatus, CriticalValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorStatusLabel(tt.status)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestGetPlainTierLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    schema.DoraTier
		expected string
	}{
		{
			name:     "elite tier",
			input:    schema.EliteTier,
			expected: EliteValue,
		},
		{
			name:     "high tier",
			input:    schema.HighTier,
			expected: HighValue,
		},
		{
			name:     "medium tier",
			input:    schema.MediumTier,
			expected: MediumValue,
		},
		{
			name:     "low tier",
			input:    schema.LowTier,
			expected: LowValue,
		},
		{
			name:     "empty tier",
			input:    schema.DoraTier(""),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainTierLabel(tt.input))
		})
	}
}

func TestGetColorTierLabel(t *testing.T) {
	tests := []struct {
		name  string
		tier  schema.DoraTier
		label string
	}{
		{"elite", schema.EliteTier, EliteValue},
		{"high", schema.HighTier, HighValue},
		{"medium", schema.MediumTier, MediumValue},
		{"low", schema.LowTier, LowValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorTierLabel(tt.tier)
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()

	// Should not be empty
	assert.NotEmpty(t, path)

	// Should contain the database name
	assert.Contains(t, path, ".dorascope_history.db")

	// Should be in home directory
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncateRepo(t *testing.T) {
	tests := []struct {
		name     string
		repo     string
		maxWidth int
		expected string
	}{
		{
			name:     "short slug unchanged",
			repo:     "acme/checkout",
			maxWidth: 20,
			expected: "acme/checkout",
		},
		{
			name:     "exact fit unchanged",
			repo:     "acme/checkout",
			maxWidth: 13,
			expected: "acme/checkout",
		},
		{
			name:     "long slug keeps the tail",
			repo:     "enterprise-org/very-long-repository-name",
			maxWidth: 20,
			expected: "...g-repository-name",
		},
		{
			name:     "tiny width leaves slug alone",
			repo:     "acme/checkout",
			maxWidth: 3,
			expected: "acme/checkout",
		},
		{
			name:     "unicode slug truncates on runes",
			repo:     "org/リポジトリずかん",
			maxWidth: 8,
			expected: "...トリずかん",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateRepo(tt.repo, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", "yes", true, false},
		{"true mixed case", "TrUe", true, false},
		{"one", "1", true, false},
		{"no", "no", false, false},
		{"false", "false", false, false},
		{"zero", "0", false, false},
		{"empty", "", false, true},
		{"garbage", "maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
