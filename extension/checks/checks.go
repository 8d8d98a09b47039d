// Package checks provides the extension that runs the length gate.
// Registers commands: check, detect, count, platforms, buckets.
//
// All of them work without a store. check records its result when one is
// found and falls back to a dry run when none exists, so the gate can run in
// a fresh CI checkout before anyone has called "qgate init".
package checks

import (
	"github.com/jpl-au/qgate/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the checks extension.
type Extension struct{}

// Compile-time interface compliance.
var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "checks".
func (e *Extension) Name() string { return "checks" }

// Commands returns the gate commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newCheckCmd(),
		e.newDetectCmd(),
		e.newCountCmd(),
		e.newPlatformsCmd(),
		e.newBucketsCmd(),
	}
}

// MCPTools returns nil - qgate_check and friends are built into internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands lists every command: check opens the store itself and the
// rest never need it.
func (e *Extension) NoStoreCommands() []string {
	return []string{"check", "detect", "count", "platforms", "buckets"}
}
