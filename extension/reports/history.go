// history.go implements the "qgate history" command.

package reports

import (
	"fmt"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/duration"
	"github.com/jpl-au/qgate/internal/format"
	"github.com/jpl-au/qgate/internal/history"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history [batch]",
		Short: "List recorded reports",
		Long: `List recorded reports newest first, for one batch or for every batch.

  qgate history                  # all batches
  qgate history launch -n 5      # last five checks of "launch"
  qgate history launch --diff    # what changed between runs
  qgate history --since 7d`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runHistory,
	}
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Limit number of reports shown")
	c.Flags().String(extension.FlagSince, "", "Only reports newer than duration (e.g., 12h, 7d)")
	c.Flags().BoolP(extension.FlagDiff, "d", false, "Show diffs between consecutive reports")
	return c
}

func (e *Extension) runHistory(c *cobra.Command, args []string) error {
	ctx := c.Context()
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	since, _ := c.Flags().GetString(extension.FlagSince)
	showDiff, _ := c.Flags().GetBool(extension.FlagDiff)

	var ref string
	if len(args) == 1 {
		ref = args[0]
	}

	if limit < 0 {
		return cmd.PrintJSONError(fmt.Errorf("limit must be >= 0, got %d", limit))
	}

	opts := history.Options{
		Limit:    limit,
		ShowDiff: showDiff,
		Colour:   format.IsTerminal(cmd.Out()),
	}
	if since != "" {
		d, err := duration.Parse(since)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("parse duration %q: %w", since, err))
		}
		opts.Since = &d
	}

	result, err := history.Run(ctx, cmd.TextOut(), e.svc, ref, opts)

	l := log.Event("reports:history", "history").
		Author(cmd.Author()).
		Detail("count", len(result.Reports))
	if ref != "" {
		l.Detail("ref", ref)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("history: %w", err))
	}

	out := make([]store.ReportJSON, len(result.Reports))
	for i := range result.Reports {
		out[i] = result.Reports[i].ToJSON()
	}
	return cmd.PrintJSON(out)
}
