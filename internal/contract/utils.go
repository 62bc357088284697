package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/dorascope/dorascope/schema"
)

// Display label constants.
const (
	CriticalValue = "Critical" // Critical health
	WarningValue  = "Warning"  // Degraded health
	GoodValue     = "Good"     // Healthy

	EliteValue  = "Elite"  // Elite performance tier
	HighValue   = "High"   // High performance tier
	MediumValue = "Medium" // Medium performance tier
	LowValue    = "Low"    // Low performance tier
)

// Color variables for console output.
var (
	criticalColor = color.New(color.FgRed, color.Bold) // criticalColor represents standard danger.
	warningColor  = color.New(color.FgYellow)          // warningColor represents standard caution, not bold.
	goodColor     = color.New(color.FgGreen)           // goodColor represents a healthy signal.

	eliteColor  = color.New(color.FgGreen, color.Bold) // eliteColor represents top-tier delivery.
	highColor   = color.New(color.FgCyan)              // highColor represents solid delivery.
	mediumColor = color.New(color.FgYellow)            // mediumColor represents middling delivery.
	lowColor    = color.New(color.FgRed)               // lowColor represents delivery that needs attention.
)

// GetPlainStatusLabel returns a plain text label for a health status.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainStatusLabel(status schema.HealthStatus) string {
	switch status {
	case schema.CriticalStatus:
		return CriticalValue
	case schema.WarningStatus:
		return WarningValue
	default:
		return GoodValue
	}
}

// GetColorStatusLabel returns a colored text label for console output (table).
// It uses GetPlainStatusLabel to determine the string, and then applies the appropriate color.
func GetColorStatusLabel(status schema.HealthStatus) string {
	text := GetPlainStatusLabel(status)

	switch status {
	case schema.CriticalStatus:
		return criticalColor.Sprint(text)
	case schema.WarningStatus:
		return warningColor.Sprint(text)
	default: // "Good"
		return goodColor.Sprint(text)
	}
}

// GetPlainTierLabel returns a plain text label for a performance tier.
// An empty tier (no data) yields an empty label.
func GetPlainTierLabel(tier schema.DoraTier) string {
	switch tier {
	case schema.EliteTier:
		return EliteValue
	case schema.HighTier:
		return HighValue
	case schema.MediumTier:
		return MediumValue
	case schema.LowTier:
		return LowValue
	default:
		return ""
	}
}

// GetColorTierLabel returns a colored text label for a performance tier.
func GetColorTierLabel(tier schema.DoraTier) string {
	text := GetPlainTierLabel(tier)

	switch tier {
	case schema.EliteTier:
		return eliteColor.Sprint(text)
	case schema.HighTier:
		return highColor.Sprint(text)
	case schema.MediumTier:
		return mediumColor.Sprint(text)
	case schema.LowTier:
		return lowColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path and format type. It falls back to os.Stdout on error.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".dorascope_history.db"
	}
	return filepath.Join(homeDir, ".dorascope_history.db")
}

// TruncateRepo shortens a repository slug to fit a table column, keeping the
// trailing characters visible.
func TruncateRepo(repo string, maxWidth int) string {
	runes := []rune(repo)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return repo
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
