package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/testgap/internal/adapters/outbound/report"
	"github.com/openkraft/testgap/internal/application"
	"github.com/openkraft/testgap/internal/domain"
)

// registerResources registers all testgap MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. testgap://coverage - coverage report
	s.AddResource(
		mcplib.NewResource(
			"testgap://coverage",
			"Coverage Report",
			mcplib.WithResourceDescription("Markdown test coverage report with prioritized untested entities"),
			mcplib.WithMIMEType("text/markdown"),
		),
		handleMarkdownResource(projectPath, "testgap://coverage", (*report.Renderer).Coverage),
	)

	// 2. testgap://todo - test TODO list
	s.AddResource(
		mcplib.NewResource(
			"testgap://todo",
			"Test TODO",
			mcplib.WithResourceDescription("Markdown list of every entity with its docstring, test status and complexity"),
			mcplib.WithMIMEType("text/markdown"),
		),
		handleMarkdownResource(projectPath, "testgap://todo", (*report.Renderer).TODO),
	)

	// 3. testgap://modules/{name} - per-module coverage (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"testgap://modules/{name}",
			"Module Coverage",
			mcplib.WithTemplateDescription("Tested and untested entities of one module group"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleModuleResource(projectPath),
	)
}

func handleMarkdownResource(projectPath, uri string, render func(*report.Renderer, *domain.Analysis) string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		a, err := application.NewDefaultAnalysisService().Analyze(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("analysis failed: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      uri,
				MIMEType: "text/markdown",
				Text:     render(report.New(), a),
			},
		}, nil
	}
}

func handleModuleResource(projectPath string) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		moduleName := templateArg(request.Params.Arguments["name"])
		if moduleName == "" {
			return nil, fmt.Errorf("module name is required")
		}

		a, err := application.NewDefaultAnalysisService().Analyze(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("analysis failed: %w", err)
		}

		var found *domain.ModuleCoverage
		for i := range a.Coverage.Modules {
			if a.Coverage.Modules[i].Name == moduleName {
				found = &a.Coverage.Modules[i]
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("module %q not found", moduleName)
		}

		data, err := json.MarshalIndent(struct {
			domain.ModuleCoverage
			Percentage float64 `json:"coverage_percentage"`
		}{*found, found.Percentage()}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling module: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

// templateArg reads a URI template argument, which may arrive as a string
// or a single-element list depending on the matcher.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	case []any:
		if len(t) > 0 {
			s, _ := t[0].(string)
			return s
		}
	}
	return ""
}
