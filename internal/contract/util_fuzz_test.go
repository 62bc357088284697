package contract

import (
	"testing"
	"time"
)

// FuzzParseRelativeTime fuzzes the relative time parser with arbitrary inputs.
func FuzzParseRelativeTime(f *testing.F) {
	seeds := []string{
		"2 years ago",
		"3 months ago",
		"1 week ago",
		"10 DAYS AGO",
		"0 minutes ago",
		"yesterday",
		"",
		"999999999999999999999 days ago",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	now := time.Date(2026, time.August, 3, 10, 0, 0, 0, time.UTC)
	f.Fuzz(func(_ *testing.T, input string) {
		_, _ = ParseRelativeTime(input, now)
	})
}

// FuzzParseThresholdOverrides fuzzes the threshold override parser.
func FuzzParseThresholdOverrides(f *testing.F) {
	seeds := []string{
		"lead:24:168",
		"lead:24:168,cfr:15:30,mttr:24:168,cycle:24:72",
		"lead:24",
		"lead::",
		":::,",
		"cycle:not:numeric",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input string) {
		_, _ = parseThresholdOverrides(input)
	})
}
