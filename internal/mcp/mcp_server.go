// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the dorascope MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, provider contract.EventProvider, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"DORA Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:  baseCfg,
		provider: provider,
		mgr:      mgr,
	}

	// --- 1. Tool: get_dora_report ---
	s.AddTool(mcp.NewTool("get_dora_report",
		mcp.WithDescription("Compute the DORA metrics (deployment frequency, lead time for changes, change failure rate, time to recovery) with benchmark tiers for one or more repositories."),
		mcp.WithString("repos", mcp.Description("Comma-separated repositories in owner/name format (falls back to the configured list).")),
		mcp.WithNumber("period", mcp.Description("Reporting period in days (defaults to the configured period).")),
		mcp.WithString("detail", mcp.Description("Include secondary pull request stats (yes/no)."), mcp.Enum("yes", "no")),
	), h.handleGetDoraReport)

	// --- 2. Tool: get_weekly_trends ---
	s.AddTool(mcp.NewTool("get_weekly_trends",
		mcp.WithDescription("Compute week-over-week DORA metric trends across ISO weeks, from stored history when available."),
		mcp.WithString("repos", mcp.Description("Comma-separated repositories in owner/name format (falls back to the configured list).")),
		mcp.WithNumber("weeks", mcp.Description("Number of ISO weeks to cover (defaults to 8).")),
	), h.handleGetWeeklyTrends)

	// --- 3. Tool: get_health_status ---
	s.AddTool(mcp.NewTool("get_health_status",
		mcp.WithDescription("Evaluate the configured health thresholds per metric and reduce them to per-repository and overall good/warning/critical statuses."),
		mcp.WithString("repos", mcp.Description("Comma-separated repositories in owner/name format (falls back to the configured list).")),
		mcp.WithNumber("period", mcp.Description("Reporting period in days (defaults to the configured period).")),
	), h.handleGetHealthStatus)

	return s
}

// StartMCPServer starts the dorascope MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, provider contract.EventProvider, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, provider, mgr)
	return server.ServeStdio(s)
}
