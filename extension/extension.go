// Package extension provides the plugin architecture for qgate. Extensions
// group related commands and MCP tools and register at init time, so the
// gate, history and core command sets stay independent of each other.
package extension

import (
	"time"

	"github.com/spf13/cobra"
)

// Extension defines the contract for qgate extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions can perform setup (migrations, etc).
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require a store. Commands returned by NoStoreCommands() will
// not trigger store initialisation in PersistentPreRunE.
//
// Commands listed here either run before a store exists (init), open the
// store themselves when they need it (check, serve, vacuum), or never touch
// it (platforms, buckets).
type Storeless interface {
	NoStoreCommands() []string
}

// Vacuumable extensions can clean up their own soft-deleted data.
// The vacuum command calls Vacuum on all extensions implementing this interface
// after purging deleted batches, with the same age threshold.
type Vacuumable interface {
	Extension
	// Vacuum permanently deletes soft-deleted records older than the given duration.
	// If olderThan is nil, all soft-deleted records are removed.
	// Returns the count of records deleted.
	Vacuum(ctx Context, olderThan *time.Duration) (int64, error)
}
