package cmd

import (
	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/internal/web"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dorascope HTTP API server",
	Long: `Expose reports, overviews and trends over a small JSON HTTP API.

Endpoints:
  GET /health        - liveness probe
  GET /api/report    - DORA report (?repos=owner/name,owner/name)
  GET /api/overview  - multi-repository summary
  GET /api/trends    - weekly trend table
  GET /api/status    - history store status

Query parameters mirror the CLI flags (repos, period, weeks, detail,
from-history, date). Repositories given on the command line or in the
config file become the default for requests that omit ?repos=.

Examples:
  # Serve on the default port
  dorascope serve

  # Serve a fixed fleet on a custom address
  dorascope serve acme/checkout acme/billing --serve-addr :9090

  # Probe it
  curl 'localhost:8600/api/report?repos=acme/checkout&period=14'`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		provider, err := buildProvider()
		if err != nil {
			contract.LogFatal("Cannot build event provider", err)
		}
		server := web.NewServer(cfg, provider, historyManager)
		return server.Start(cfg.ServeAddr)
	},
}
