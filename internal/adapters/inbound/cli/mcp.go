package cli

import (
	mcpadapter "github.com/openkraft/testgap/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the testgap MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		projectPath string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start testgap MCP server (stdio)",
		Long:  "Start the testgap MCP server using stdio transport. This lets AI coding assistants query coverage, untested entities and test suggestions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			setupLogger(cmd.ErrOrStderr(), verbose)
			s := mcpadapter.NewTestGapMCPServer(projectPath, version)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	return cmd
}
