// Package vacuum handles permanent deletion of soft-deleted batches.
// This is the only way to reclaim storage; removed batches and their reports
// remain until vacuum purges them, providing a recovery window.
package vacuum

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/qgate/internal/progress"
	"github.com/jpl-au/qgate/internal/service"
)

// Options configures vacuum scope.
type Options struct {
	OlderThan *time.Duration // Retain recent deletions for recovery
	DryRun    bool           // Preview without deleting
}

// Result reports what was deleted, enabling confirmation and logging.
type Result struct {
	Deleted int      `json:"deleted"`           // Rows removed, or batches that would be
	Batches []string `json:"batches,omitempty"` // Affected batch keys (dry run)
}

// Run permanently removes soft-deleted batches. This operation is
// irreversible; use DryRun first to preview what will be deleted.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	if opts.DryRun {
		return preview(ctx, w, svc, opts)
	}

	spin := progress.NewSpinner("Vacuuming")
	spin.Start()
	count, err := svc.Vacuum(ctx, opts.OlderThan)
	spin.Stop()

	if err != nil {
		return result, err
	}

	result.Deleted = int(count)
	if count == 0 {
		fmt.Fprintln(w, "No batches to vacuum")
	} else {
		fmt.Fprintf(w, "Vacuumed %d row(s)\n", count)
	}

	return result, nil
}

// preview lists the batches a vacuum would purge.
func preview(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	batches, err := svc.ListBatches(ctx, false, true) // deleted only
	if err != nil {
		return result, err
	}

	var cutoff int64
	if opts.OlderThan != nil {
		cutoff = time.Now().Add(-*opts.OlderThan).Unix()
	}

	for _, b := range batches {
		if b.DeletedAt == nil {
			continue
		}
		// Matches the store: only deletions strictly before the cutoff go
		if opts.OlderThan != nil && *b.DeletedAt >= cutoff {
			continue
		}

		name := b.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "Would delete: %s %s, %d post(s) (deleted %s)\n",
			b.Key, name, b.Posts,
			time.Unix(*b.DeletedAt, 0).Format("2006-01-02 15:04"))
		result.Batches = append(result.Batches, b.Key)
		result.Deleted++
	}

	if result.Deleted == 0 {
		fmt.Fprintln(w, "No batches to vacuum")
	} else {
		fmt.Fprintf(w, "\nWould delete %d batch(es)\n", result.Deleted)
	}

	return result, nil
}
