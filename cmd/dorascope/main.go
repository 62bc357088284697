// main is the entry point for the dorascope CLI.
package main

import (
	"fmt"
	"os"

	"github.com/dorascope/dorascope/cmd"
	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/internal/iostore"
)

// main wires persistence into the command layer and maps failures to a
// non-zero exit code.
func main() {
	os.Exit(run())
}

// run exists so that deferred cleanups fire before the process exits.
func run() int {
	defer iostore.CloseStores()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()

	cmd.SetHistoryManager(iostore.Manager)

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
