// vacuum.go implements the "qgate vacuum" command for permanent deletion.
//
// Vacuum is a NoStoreCommand: it opens the store itself so that, after
// purging removed batches and their reports, it can hand the same
// connection to Vacuumable extensions.

package core

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/duration"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/vacuum"
	"github.com/spf13/cobra"
)

func newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Permanently delete removed batches",
		Long: `Permanently delete batches removed with "qgate rm", together with
their posts and reports.

This is irreversible. Use --force to skip confirmation.

Duration formats: 12h (hours), 7d (days), 4w (weeks), 3m (months)`,
		RunE: runVacuum,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Only purge removals older than duration (e.g., 7d, 4w, 3m)")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be deleted")
	return c
}

func runVacuum(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	svc, err := cmd.OpenService()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("open store: %w", err))
	}
	defer svc.Close()

	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	opts := vacuum.Options{DryRun: dryRun}
	if olderThan != "" {
		d, err := duration.Parse(olderThan)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("parse duration %q: %w", olderThan, err))
		}
		opts.OlderThan = &d
	}

	if !dryRun && !cmd.Force() {
		fmt.Fprint(cmd.Out(), "Permanently delete removed batches? This cannot be undone. [y/N] ")
		response, err := bufio.NewReader(cmd.In()).ReadString('\n')
		if err != nil && response == "" {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	result, err := vacuum.Run(ctx, cmd.TextOut(), svc, opts)

	log.Event("core:vacuum", "vacuum").
		Author(cmd.Author()).
		Detail("dry_run", dryRun).
		Detail("older_than", olderThan).
		Detail("count", result.Deleted).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	if dryRun {
		return cmd.PrintJSON(result)
	}

	// Vacuum extension tables (extensions with custom tables implement Vacuumable)
	extCtx := extension.NewContext(svc, svc.DB(), svc.Config())
	for _, ext := range extension.All() {
		if v, ok := ext.(extension.Vacuumable); ok {
			count, err := v.Vacuum(extCtx, opts.OlderThan)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("vacuum extension %s: %w", ext.Name(), err))
			}
			result.Deleted += int(count)
			if count > 0 && !cmd.JSON() {
				fmt.Fprintf(cmd.Out(), "Vacuumed %d row(s) from %s\n", count, ext.Name())
			}
		}
	}

	return cmd.PrintJSON(result)
}
