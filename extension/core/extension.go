// Package core provides the core extension for qgate.
// It registers commands: init, config, serve, guide, llm, vacuum, db, version.
package core

import (
	"github.com/jpl-au/qgate/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance.
var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "core" - this extension provides repository management commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands for repository management.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newLlmCmd(),
		newVacuumCmd(),
		newDBCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - the MCP server provides init, config and guide itself.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve: Long-running MCP server works with or without a store.
// vacuum: Opens the store itself so extension tables are vacuumed with it.
// db: Manages gitignore, doesn't need database connection.
// version, llm: Display static information.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "vacuum", "db", "version", "llm"}
}
