// show.go implements the "qgate show" command.

package reports

import (
	"fmt"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/format"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <report|batch>",
		Short: "Show a recorded report",
		Long: `Show a recorded report as markdown. Given a batch key or name instead
of a report key, the batch's latest report is shown.

  qgate show 3f9a1c2e
  qgate show launch --raw`,
		Args: cobra.ExactArgs(1),
		RunE: e.runShow,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Print markdown without rendering")
	return c
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	ctx := c.Context()
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	ref := args[0]

	r, err := e.svc.Show(ctx, ref)

	l := log.Event("reports:show", "show").Author(cmd.Author()).Detail("ref", ref)
	if r != nil {
		l.Batch(r.BatchKey).Report(r.Key).Passed(r.Passed)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("show %q: %w", ref, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(r.ToJSON())
	}
	md := format.Markdown(r.Result(), fmt.Sprintf("Report %s (batch %s)", r.Key, r.BatchKey))
	return format.Render(cmd.Out(), md, raw)
}
