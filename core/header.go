package core

import (
	"fmt"
	"strings"

	"github.com/dorascope/dorascope/internal/contract"
)

// logReportHeader prints a concise, 2-line banner before fetching begins.
func logReportHeader(cfg *contract.Config) {
	repos := strings.Join(cfg.Repos, ", ")
	if repos == "" {
		repos = "none"
	}

	// Line 1: What is being reported on and with how much parallelism
	// Line 2: The actual window being covered
	if cfg.UseEmojis {
		fmt.Printf("🧭 Repos: %s (%d workers)\n", repos, cfg.Workers)
		fmt.Printf("📅 Range: %s → %s\n",
			cfg.GetWindowStart().Format(contract.DateTimeFormat),
			cfg.GetWindowEnd().Format(contract.DateTimeFormat))
	} else {
		fmt.Printf("Repos: %s (%d workers)\n", repos, cfg.Workers)
		fmt.Printf("Range: %s -> %s\n",
			cfg.GetWindowStart().Format(contract.DateTimeFormat),
			cfg.GetWindowEnd().Format(contract.DateTimeFormat))
	}
}
