package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dorascope/dorascope/core"
	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg  *contract.Config
	provider contract.EventProvider
	mgr      contract.HistoryManager
}

func (h *toolHandler) handleGetDoraReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
	}
	if d := request.GetString("detail", ""); d != "" {
		detail, err := contract.ParseBoolString(d)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
		}
		cfg.Detail = detail
	}

	result, err := core.GetReportResults(core.WithSuppressHeader(ctx), cfg, h.provider, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetWeeklyTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid trend parameters: %v", err)), nil
	}
	if w := request.GetInt("weeks", 0); w != 0 {
		if w < 1 || w > contract.MaxTrendWeeks {
			return mcp.NewToolResultError(fmt.Sprintf("invalid trend parameters: weeks must be 1..%d", contract.MaxTrendWeeks)), nil
		}
		cfg.TrendWeeks = w
	}

	result, err := core.GetTrendsResults(core.WithSuppressHeader(ctx), cfg, h.provider, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHealthStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid health parameters: %v", err)), nil
	}

	result, err := core.GetHealthResults(core.WithSuppressHeader(ctx), cfg, h.provider, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("health evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// requestConfig clones the base configuration and applies the arguments every
// tool shares. The window end re-anchors to now on each call, mirroring the
// HTTP API, so a long-lived server never reports on a stale window.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.Date = time.Now().UTC()

	if raw := request.GetString("repos", ""); raw != "" {
		repos := schema.ParseList(raw)
		for _, repo := range repos {
			if _, _, ok := schema.SplitRepo(repo); !ok {
				return nil, fmt.Errorf("invalid repository '%s'. Expected owner/name format", repo)
			}
		}
		cfg.Repos = repos
	}
	if p := request.GetInt("period", 0); p != 0 {
		if p < 1 || p > contract.MaxPeriodDays {
			return nil, fmt.Errorf("period must be 1..%d days", contract.MaxPeriodDays)
		}
		cfg.PeriodDays = p
	}
	return cfg, nil
}
