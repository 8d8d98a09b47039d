// ls.go implements the "qgate ls" command.

package reports

import (
	"fmt"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/ls"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List stored batches",
		Long: `List stored batches, newest first.

  qgate ls
  qgate ls -l --platform twitter
  qgate ls --deleted            # batches waiting for vacuum
  qgate ls --sort name -r`,
		Args: cobra.NoArgs,
		RunE: e.runLs,
	}
	c.Flags().BoolP(extension.FlagAll, "A", false, "Include removed batches")
	c.Flags().BoolP(extension.FlagDeleted, "D", false, "Show only removed batches")
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format with author, post count and date")
	c.Flags().StringP(extension.FlagPlatform, "p", "", "Only batches for this platform")
	c.Flags().String(extension.FlagSort, "", "Sort by name or time")
	c.Flags().BoolP(extension.FlagReverse, "r", false, "Reverse sort order")
	return c
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	all, _ := c.Flags().GetBool(extension.FlagAll)
	del, _ := c.Flags().GetBool(extension.FlagDeleted)
	long, _ := c.Flags().GetBool(extension.FlagLong)
	name, _ := c.Flags().GetString(extension.FlagPlatform)
	sortBy, _ := c.Flags().GetString(extension.FlagSort)
	reverse, _ := c.Flags().GetBool(extension.FlagReverse)

	opts := ls.Options{
		IncludeAll:  all,
		DeletedOnly: del,
		Long:        long,
		Sort:        ls.SortField(sortBy),
		Reverse:     reverse,
	}
	switch opts.Sort {
	case ls.SortNone, ls.SortName, ls.SortTime:
	default:
		return cmd.PrintJSONError(fmt.Errorf("invalid sort field %q (valid: name, time)", sortBy))
	}
	if name != "" {
		p, ok := platform.Parse(name)
		if !ok {
			return cmd.PrintJSONError(fmt.Errorf("unknown platform %q (see 'qgate platforms')", name))
		}
		opts.Platform = p
	}

	result, err := ls.Run(ctx, cmd.TextOut(), e.svc, opts)

	log.Event("reports:ls", "list").
		Author(cmd.Author()).
		Detail("count", len(result.Batches)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls: %w", err))
	}
	return cmd.PrintJSON(result.ToJSON())
}
