package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	doxymcp "github.com/gorewood/doxy2json/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd(flags *buildFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run doxy2json as a Model Context Protocol (MCP) server over stdio.

This exposes doxy2json operations as MCP tools that any MCP-capable agent
environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "doxy2json": {
        "command": "doxy2json",
        "args": ["serve"]
      }
    }
  }

Site location flags (--root, --api-dir, ...) and the settings file provide
the defaults for every tool call.

Available tools: doxyfile, convert, index, generate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := resolveOptions(cmd, flags)
			if err != nil {
				return err
			}
			server := doxymcp.NewServer(buildVersion(), opts)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
