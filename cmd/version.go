package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dorascope.",
	Long: `Display the release version along with build metadata.

Covers:
- Release version
- Git commit the binary was built from
- Build timestamp
- Go runtime version

Include this output when filing a bug report.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("dorascope CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
