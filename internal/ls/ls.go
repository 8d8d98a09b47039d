// Package ls lists stored batches with filtering and sorting.
//
// Batches come back from the store newest first. Sorting by name helps when
// batches are named after campaigns; the platform filter narrows a shared
// database to one channel.
package ls

import (
	"context"
	"io"
	"sort"

	"github.com/jpl-au/qgate/internal/format"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/service"
	"github.com/jpl-au/qgate/internal/store"
)

// SortField specifies how to sort results.
type SortField string

const (
	SortNone SortField = ""
	SortName SortField = "name"
	SortTime SortField = "time" // newest first
)

// Options configures a list operation.
type Options struct {
	IncludeAll  bool              // Include removed batches
	DeletedOnly bool              // Show only removed batches
	Long        bool              // Long format with metadata
	Platform    platform.Platform // Only batches recorded for this platform
	Sort        SortField         // Sort field (name, time)
	Reverse     bool              // Reverse sort order
}

// Result contains the outcome of a list operation.
type Result struct {
	Batches []store.Batch
}

// ToJSON converts the result to its API representation.
func (r Result) ToJSON() []store.BatchJSON {
	out := make([]store.BatchJSON, len(r.Batches))
	for i := range r.Batches {
		out[i] = r.Batches[i].ToJSON()
	}
	return out
}

// Run lists batches and writes them to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	batches, err := svc.ListBatches(ctx, opts.IncludeAll, opts.DeletedOnly)
	if err != nil {
		return result, err
	}

	if opts.Platform != "" {
		want := platform.Normalise(opts.Platform)
		kept := batches[:0]
		for _, b := range batches {
			if b.Platform == want {
				kept = append(kept, b)
			}
		}
		batches = kept
	}

	sortBatches(batches, opts.Sort, opts.Reverse)
	result.Batches = batches

	if opts.Long {
		return result, format.BatchesLong(w, batches)
	}
	return result, format.Batches(w, batches)
}

// sortBatches orders batches in place. SortNone keeps the store's order,
// which is newest first.
func sortBatches(batches []store.Batch, field SortField, reverse bool) {
	switch field {
	case SortName:
		sort.SliceStable(batches, func(i, j int) bool {
			if batches[i].Name != batches[j].Name {
				return batches[i].Name < batches[j].Name
			}
			return batches[i].Key < batches[j].Key
		})
	case SortTime:
		sort.SliceStable(batches, func(i, j int) bool {
			return batches[i].CreatedAt > batches[j].CreatedAt
		})
	}
	if reverse {
		for i, j := 0, len(batches)-1; i < j; i, j = i+1, j-1 {
			batches[i], batches[j] = batches[j], batches[i]
		}
	}
}
