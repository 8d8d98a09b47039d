// Package history lists recorded length reports with optional diffs.
//
// Every check records a report, so rerunning the gate on a batch builds a
// trail of results. The diff view shows what changed between consecutive
// runs, useful after the thresholds or the generator were tuned.
package history

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/qgate/internal/format"
	"github.com/jpl-au/qgate/internal/service"
	"github.com/jpl-au/qgate/internal/store"
)

// Options configures a history operation.
type Options struct {
	Limit    int            // Maximum reports to return (0 = all)
	Since    *time.Duration // Only reports newer than this
	ShowDiff bool           // Show diffs between consecutive reports
	Colour   bool           // Colourize diff output
}

// Result contains the outcome of a history operation.
type Result struct {
	Reports []store.Report
}

// Run retrieves report history and writes output to w. batchRef may be a
// batch key or name; empty lists reports across all batches.
func Run(ctx context.Context, w io.Writer, svc service.Service, batchRef string, opts Options) (Result, error) {
	var result Result

	reports, err := svc.History(ctx, batchRef, opts.Limit)
	if err != nil {
		return result, err
	}

	if opts.Since != nil {
		cutoff := time.Now().Add(-*opts.Since).Unix()
		kept := reports[:0]
		for _, r := range reports {
			if r.CreatedAt >= cutoff {
				kept = append(kept, r)
			}
		}
		reports = kept
	}

	if len(reports) == 0 {
		if batchRef == "" {
			return result, fmt.Errorf("no reports recorded")
		}
		return result, fmt.Errorf("no reports found for %s", batchRef)
	}

	result.Reports = reports

	if opts.ShowDiff {
		err = format.HistoryDiff(w, reports, opts.Colour)
	} else {
		err = format.History(w, reports)
	}

	return result, err
}
