package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"testctl/internal/orchestrator"
	"testctl/internal/reporting"
)

// checkInfo is the listing form of a registered check.
type checkInfo struct {
	Category    string `json:"category"`
	ID          string `json:"id"`
	Kind        string `json:"kind,omitempty"`
	Independent bool   `json:"independent"`
	Description string `json:"description,omitempty"`
}

// handleListChecks handles the testctl_list_checks MCP tool
func (s *Server) handleListChecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	checks, err := s.orchestrator.Registry().ListChecks(categoriesArg(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	infos := make([]checkInfo, 0, len(checks))
	for _, c := range checks {
		infos = append(infos, checkInfo{
			Category:    c.Category,
			ID:          c.ID,
			Kind:        c.Kind,
			Independent: c.Independent,
			Description: c.Description,
		})
	}

	jsonData, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format checks: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleRunChecks handles the testctl_run_checks MCP tool
func (s *Server) handleRunChecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	opts := orchestrator.Options{}
	if force, ok := args["force"].(bool); ok && force {
		opts.ForceAll = true
		opts.ClearCache = true
	}
	if sequential, ok := args["sequential"].(bool); ok {
		opts.Sequential = sequential
	}

	s.runMu.Lock()
	results, err := s.orchestrator.Run(ctx, categoriesArg(request), opts)
	s.runMu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	jsonData, err := json.MarshalIndent(reporting.Summarize(results), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleClearCache handles the testctl_clear_cache MCP tool
func (s *Server) handleClearCache(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if err := s.orchestrator.Store().Clear(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to clear cache: %v", err)), nil
	}
	return mcp.NewToolResultText("Cache cleared"), nil
}

// categoriesArg splits the optional comma-separated categories argument.
func categoriesArg(request mcp.CallToolRequest) []string {
	raw, _ := request.GetArguments()["categories"].(string)

	var categories []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	return categories
}

func joinCategories(categories []string) string {
	if len(categories) == 0 {
		return "none"
	}
	return strings.Join(categories, ", ")
}
