// Package all imports all built-in qgate extensions.
// Import this package to register all built-in commands.
package all

import (
	// Built-in extensions - each registers itself via init()
	_ "github.com/jpl-au/qgate/extension/checks"
	_ "github.com/jpl-au/qgate/extension/core"
	_ "github.com/jpl-au/qgate/extension/reports"
)
