package cmd

import (
	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the dorascope MCP server",
	Long:  `Launch an MCP server that allows AI agents to pull DORA reports, trends and health checks via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		provider, err := buildProvider()
		if err != nil {
			contract.LogFatal("Cannot build event provider", err)
		}
		return mcp.StartMCPServer(rootCtx, cfg, provider, historyManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
