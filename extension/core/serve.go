// serve.go implements the "qgate serve" command for MCP server operation.
//
// Serve is a NoStoreCommand: it blocks handling MCP requests over stdio and
// opens the store itself, running checks as dry runs when there is none.

package core

import (
	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio so an LLM can
check the posts it generates before publishing them.

Use --db to serve a specific database:
  qgate serve --db staging    # serve qgate-staging.db`,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(cmd.DB())
}
