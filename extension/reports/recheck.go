// recheck.go implements the "qgate recheck" command.

package reports

import (
	"fmt"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/check"
	"github.com/jpl-au/qgate/internal/format"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/spf13/cobra"
)

func (e *Extension) newRecheckCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "recheck <batch>",
		Short: "Check a stored batch again",
		Long: `Validate a stored batch again with the current configuration and
record a new report. Useful after changing limits or the sameness
threshold. The batch keeps the platform it was first checked against
unless --platform is given.

  qgate recheck launch
  qgate recheck launch --platform linkedin --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: e.runRecheck,
	}
	c.Flags().StringP(extension.FlagPlatform, "p", "", "Check against this platform instead")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Validate without recording a report")
	c.Flags().Bool(extension.FlagStrict, false, "Exit with status 1 when the batch fails")
	return c
}

func (e *Extension) runRecheck(c *cobra.Command, args []string) error {
	ctx := c.Context()
	ref := args[0]
	name, _ := c.Flags().GetString(extension.FlagPlatform)
	strict, _ := c.Flags().GetBool(extension.FlagStrict)

	opts := check.Options{Author: cmd.Author()}
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)
	if name != "" {
		p, ok := platform.Parse(name)
		if !ok {
			return cmd.PrintJSONError(fmt.Errorf("unknown platform %q (see 'qgate platforms')", name))
		}
		opts.Platform = p
	}

	res, err := e.svc.Recheck(ctx, ref, opts)

	l := log.Event("reports:recheck", "recheck").Author(cmd.Author()).Detail("ref", ref)
	if res != nil {
		l.Batch(res.Batch).Report(res.Report).Platform(res.Platform.String()).Passed(res.Passed)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("recheck %q: %w", ref, err))
	}

	w := cmd.TextOut()
	if err := format.Summary(w, res.Result); err != nil {
		return err
	}
	if res.DryRun {
		fmt.Fprintln(w, "\nDry run: nothing recorded")
	} else {
		fmt.Fprintf(w, "\nRecorded report %s for batch %s\n", res.Report, res.Batch)
	}
	if err := cmd.PrintJSON(res); err != nil {
		return err
	}

	if strict && !res.Passed {
		c.SilenceUsage = true
		return cmd.ErrGateFailed
	}
	return nil
}
