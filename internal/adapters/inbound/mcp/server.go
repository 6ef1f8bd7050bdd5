package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewTestGapMCPServer creates a new MCP server with all testgap tools and
// resources registered. The projectPath is the root directory of the project
// to analyze.
func NewTestGapMCPServer(projectPath, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"testgap",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
