/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE handles store initialisation lazily - only
// commands that need the store trigger extension init. Bootstrap commands
// (init, guide, config) and offline commands (platforms, buckets, check
// --dry-run) work without a store. The noStoreCommands map controls which
// commands skip initialisation.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/qgate/internal/log"
	"github.com/spf13/cobra"
)

// ErrGateFailed is returned by commands run with --strict when a batch does
// not pass. The summary has already been printed, so Execute only sets the
// exit status.
var ErrGateFailed = errors.New("length gate failed")

var rootCmd = &cobra.Command{
	Use:   "qgate",
	Short: "Platform-aware length gate for generated posts",
	Long: `Checks batches of generated posts against per-platform length rules
(Twitter/X, LinkedIn, Facebook, email, blog), reports the length
distribution, and flags batches whose posts are suspiciously uniform.

Results are recorded so reruns can be compared with history and diff.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// Detect author if not explicitly set
		if author == "" {
			author = detectAuthor()
		}

		// Initialise extensions for commands that need the store
		if !noStoreCommands[topLevelCmdName(cmd)] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "qgate history launch", returns "history".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions, executes the command, and
// closes the gate service before exit. Exit code 1 indicates an error or a
// failed --strict check.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()

	// Close the service if it was created
	if extService != nil {
		if closeErr := extService.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
