// flags.go defines constants for all CLI flag names.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
// These are used with cobra's Flags().Type() and GetType() methods.
const (
	// Boolean flags

	FlagAll           = "all"            // Include all items (including deleted)
	FlagDeleted       = "deleted"        // Show only deleted items
	FlagDiff          = "diff"           // Show diff output
	FlagDryRun        = "dry-run"        // Preview without making changes
	FlagIncludeHidden = "include-hidden" // Include hidden files/directories
	FlagList          = "list"           // List available entries
	FlagLocal         = "local"          // Use local scope (gitignored)
	FlagLong          = "long"           // Long format output
	FlagRaw           = "raw"            // Raw output without formatting
	FlagReverse       = "reverse"        // Reverse sort order
	FlagShare         = "share"          // Mark as shared (committed)
	FlagStrict        = "strict"         // Exit non-zero when the gate fails

	// String flags

	FlagBatch     = "batch"      // Batch key or name
	FlagFormat    = "format"     // Input format (json, yaml, text)
	FlagName      = "name"       // Batch name
	FlagOlderThan = "older-than" // Duration threshold
	FlagPlatform  = "platform"   // Force a platform
	FlagSince     = "since"      // Only items newer than a duration
	FlagSort      = "sort"       // Sort field (name, time)

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
