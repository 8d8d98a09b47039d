// stats.go implements the "qgate stats" command.

package reports

import (
	"fmt"
	"time"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/internal/format"
	"github.com/jpl-au/qgate/internal/store"
	"github.com/spf13/cobra"
)

// statsJSON is the JSON shape of "qgate stats".
type statsJSON struct {
	Batches        int64            `json:"batches"`
	DeletedBatches int64            `json:"deleted_batches"`
	Posts          int64            `json:"posts"`
	Reports        int64            `json:"reports"`
	Passed         int64            `json:"passed"`
	Failed         int64            `json:"failed"`
	Authors        int64            `json:"authors"`
	ByPlatform     map[string]int64 `json:"by_platform"`
	OldestBatch    string           `json:"oldest_batch,omitempty"`
	NewestBatch    string           `json:"newest_batch,omitempty"`
}

func statsToJSON(s *store.Stats) statsJSON {
	ts := func(unix int64) string {
		if unix == 0 {
			return ""
		}
		return time.Unix(unix, 0).UTC().Format(time.RFC3339)
	}
	return statsJSON{
		Batches:        s.Batches,
		DeletedBatches: s.DeletedBatches,
		Posts:          s.Posts,
		Reports:        s.Reports,
		Passed:         s.Passed,
		Failed:         s.Failed,
		Authors:        s.Authors,
		ByPlatform:     s.ByPlatform,
		OldestBatch:    ts(s.OldestBatch),
		NewestBatch:    ts(s.NewestBatch),
	}
}

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show store statistics",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			s, err := e.svc.Stats(c.Context())
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("stats: %w", err))
			}
			if err := format.Stats(cmd.TextOut(), s); err != nil {
				return err
			}
			return cmd.PrintJSON(statsToJSON(s))
		},
	}
}
