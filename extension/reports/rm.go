// rm.go implements the "qgate rm" and "qgate restore" commands.

package reports

import (
	"fmt"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/rm"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <batch>...",
		Short: "Remove batches",
		Long: `Remove batches by key or name. Removed batches and their reports are
hidden from ls and history until restored or purged with "qgate vacuum".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			result, err := rm.Run(c.Context(), cmd.TextOut(), e.svc, args)
			for _, key := range result.Removed {
				log.Event("reports:rm", "remove").Author(cmd.Author()).Batch(key).Write(nil)
			}
			if err != nil {
				log.Event("reports:rm", "remove").Author(cmd.Author()).Write(err)
				return cmd.PrintJSONError(fmt.Errorf("rm: %w", err))
			}
			return cmd.PrintJSON(result)
		},
	}
}

func (e *Extension) newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <batch>...",
		Short: "Restore removed batches",
		Long:  `Restore batches removed with "qgate rm", together with their reports.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			result, err := rm.Restore(c.Context(), cmd.TextOut(), e.svc, args)
			for _, key := range result.Restored {
				log.Event("reports:restore", "restore").Author(cmd.Author()).Batch(key).Write(nil)
			}
			if err != nil {
				log.Event("reports:restore", "restore").Author(cmd.Author()).Write(err)
				return cmd.PrintJSONError(fmt.Errorf("restore: %w", err))
			}
			return cmd.PrintJSON(result)
		},
	}
}
