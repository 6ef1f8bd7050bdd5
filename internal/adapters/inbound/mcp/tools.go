package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/testgap/internal/application"
	"github.com/openkraft/testgap/internal/domain"
)

// registerTools registers all testgap MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. testgap_analyze
	s.AddTool(
		mcplib.NewTool("testgap_analyze",
			mcplib.WithDescription("Returns the coverage summary of the project: totals, percentage and per-module breakdown"),
		),
		handleAnalyze(projectPath),
	)

	// 2. testgap_suggestions
	s.AddTool(
		mcplib.NewTool("testgap_suggestions",
			mcplib.WithDescription("Returns untested entities ranked for test writing, with a suggested approach and test name"),
			mcplib.WithString("priority",
				mcplib.Description("Only return one tier: high, medium or low"),
				mcplib.Enum("high", "medium", "low"),
			),
			mcplib.WithNumber("limit", mcplib.Description("Maximum number of suggestions (default: all)")),
		),
		handleSuggestions(projectPath),
	)

	// 3. testgap_entities
	s.AddTool(
		mcplib.NewTool("testgap_entities",
			mcplib.WithDescription("Lists discovered functions, classes and methods with their complexity and test status"),
			mcplib.WithString("module", mcplib.Description("Dotted module path prefix to filter by")),
			mcplib.WithString("status",
				mcplib.Description("Filter by test status: tested or untested"),
				mcplib.Enum("tested", "untested"),
			),
		),
		handleEntities(projectPath),
	)
}

type moduleSummary struct {
	Name       string  `json:"name"`
	Tested     int     `json:"tested"`
	Untested   int     `json:"untested"`
	Percentage float64 `json:"coverage_percentage"`
}

type analysisSummary struct {
	Project     string          `json:"project"`
	CommitHash  string          `json:"commit_hash,omitempty"`
	TotalItems  int             `json:"total_items"`
	Tested      int             `json:"tested_items"`
	Untested    int             `json:"untested_items"`
	Percentage  float64         `json:"coverage_percentage"`
	TestFiles   int             `json:"test_files"`
	TestFuncs   int             `json:"test_functions"`
	Modules     []moduleSummary `json:"modules"`
	HighPending int             `json:"high_priority_untested"`
}

type entityStatus struct {
	domain.Entity
	Tested bool `json:"tested"`
}

func handleAnalyze(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		a, err := application.NewDefaultAnalysisService().Analyze(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(summarize(a))
	}
}

func handleSuggestions(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		priority := domain.Priority(strings.ToLower(request.GetString("priority", "")))
		limit := int(request.GetFloat("limit", 0))
		if priority != "" && !validPriority(priority) {
			return errorResult(fmt.Sprintf("unknown priority %q", priority)), nil
		}

		a, err := application.NewDefaultAnalysisService().Analyze(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		suggestions := a.Suggestions
		if priority != "" {
			suggestions = a.ByPriority(priority)
		}
		if limit > 0 && len(suggestions) > limit {
			suggestions = suggestions[:limit]
		}
		if suggestions == nil {
			suggestions = []domain.Suggestion{}
		}
		return jsonResult(suggestions)
	}
}

func handleEntities(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		module := request.GetString("module", "")
		status := request.GetString("status", "")
		if status != "" && status != "tested" && status != "untested" {
			return errorResult(fmt.Sprintf("unknown status %q", status)), nil
		}

		a, err := application.NewDefaultAnalysisService().Analyze(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		out := []entityStatus{}
		for _, e := range a.Entities {
			if module != "" && e.ModulePath != module && !strings.HasPrefix(e.ModulePath, module+".") {
				continue
			}
			tested := a.Coverage.IsTested(e)
			if (status == "tested" && !tested) || (status == "untested" && tested) {
				continue
			}
			out = append(out, entityStatus{Entity: e, Tested: tested})
		}
		return jsonResult(out)
	}
}

func summarize(a *domain.Analysis) analysisSummary {
	s := analysisSummary{
		Project:     a.ProjectName,
		CommitHash:  a.CommitHash,
		TotalItems:  len(a.Entities),
		Tested:      len(a.Coverage.Tested),
		Untested:    len(a.Coverage.Untested),
		Percentage:  a.Coverage.Percentage(),
		TestFiles:   len(a.Inventory.Files),
		TestFuncs:   a.Inventory.FunctionCount(),
		Modules:     []moduleSummary{},
		HighPending: len(a.ByPriority(domain.PriorityHigh)),
	}
	for _, m := range a.Coverage.Modules {
		s.Modules = append(s.Modules, moduleSummary{
			Name:       m.Name,
			Tested:     len(m.Tested),
			Untested:   len(m.Untested),
			Percentage: m.Percentage(),
		})
	}
	return s
}

func validPriority(p domain.Priority) bool {
	for _, known := range domain.Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// jsonResult marshals v as indented JSON and wraps it in a tool result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
