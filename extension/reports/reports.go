// Package reports provides the extension for reading and managing recorded
// checks. Registers commands: history, show, diff, ls, rm, restore, stats,
// recheck.
//
// Each command file holds its own flag handling and output formatting. All
// of them need a store and receive the shared service through Init.
package reports

import (
	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/config"
	"github.com/jpl-au/qgate/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the reports extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "reports".
func (e *Extension) Name() string { return "reports" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the report and batch management commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newHistoryCmd(),
		e.newShowCmd(),
		e.newDiffCmd(),
		e.newLsCmd(),
		e.newRmCmd(),
		e.newRestoreCmd(),
		e.newStatsCmd(),
		e.newRecheckCmd(),
	}
}

// MCPTools exposes the batch listing to MCP clients.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{batchesTool()}
}
