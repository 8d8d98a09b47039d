// diff.go implements the "qgate diff" command.

package reports

import (
	"fmt"
	"strings"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/diff"
	"github.com/jpl-au/qgate/internal/format"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/spf13/cobra"
)

// diffJSON is the JSON shape of "qgate diff".
type diffJSON struct {
	diff.Result
	Changed bool `json:"changed"`
}

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <batch> | <old> <new> | <old:new> | --batch <batch>",
		Short: "Show what changed between two reports",
		Long: `Compare two recorded reports.

With one batch argument the batch's two most recent reports are compared.
With two references (or old:new) those reports are compared; a batch
reference stands for its latest report.

  qgate diff launch
  qgate diff --batch launch
  qgate diff 3f9a1c2e 7b2d4e10
  qgate diff 3f9a1c2e:7b2d4e10`,
		Args: cobra.MaximumNArgs(2),
		RunE: e.runDiff,
	}
	c.Flags().StringP(extension.FlagBatch, "b", "", "Compare the two latest reports of this batch")
	c.Flags().Bool(extension.FlagRaw, false, "Output without colour")
	return c
}

// diffOptions maps the command arguments onto diff.Options.
func diffOptions(batch string, args []string) (diff.Options, error) {
	switch {
	case batch != "":
		if len(args) > 0 {
			return diff.Options{}, fmt.Errorf("--batch takes no arguments")
		}
		return diff.Options{Batch: batch}, nil
	case len(args) == 0:
		return diff.Options{}, fmt.Errorf("give a batch, two reports, or --batch")
	case len(args) == 2:
		return diff.Options{Old: args[0], New: args[1]}, nil
	case strings.Contains(args[0], ":"):
		older, newer, err := diff.ParseRange(args[0])
		if err != nil {
			return diff.Options{}, err
		}
		return diff.Options{Old: older, New: newer}, nil
	default:
		return diff.Options{Batch: args[0]}, nil
	}
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	ctx := c.Context()
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	batch, _ := c.Flags().GetString(extension.FlagBatch)

	opts, err := diffOptions(batch, args)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	colour := !raw && format.IsTerminal(cmd.Out())
	r, err := diff.Run(ctx, cmd.TextOut(), e.svc, opts, colour)

	log.Event("reports:diff", "diff").
		Author(cmd.Author()).
		Detail("args", strings.Join(args, " ")).
		Detail("changed", err == nil && r.Changed()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff: %w", err))
	}
	return cmd.PrintJSON(diffJSON{Result: r, Changed: r.Changed()})
}
