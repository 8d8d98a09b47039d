// read.go implements batch and report lookup for the Service layer.
//
// User-facing references may be a batch key, a batch name or a report key.
// Resolution lives here so commands and MCP tools accept the same inputs.

package gate

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/qgate/internal/diff"
	"github.com/jpl-au/qgate/internal/store"
)

// Batch resolves a batch by key or name.
func (s *Service) Batch(ctx context.Context, ref string, includeDeleted bool) (*store.Batch, error) {
	return s.store.Batch(ctx, ref, includeDeleted)
}

// Posts returns the posts of a batch in import order.
func (s *Service) Posts(ctx context.Context, batchRef string) ([]store.Post, error) {
	b, err := s.store.Batch(ctx, batchRef, true)
	if err != nil {
		return nil, err
	}
	return s.store.Posts(ctx, b.Key)
}

// ListBatches returns batches newest first.
func (s *Service) ListBatches(ctx context.Context, includeDeleted, deletedOnly bool) ([]store.Batch, error) {
	return s.store.ListBatches(ctx, includeDeleted, deletedOnly)
}

// History returns reports newest first, optionally for one batch.
func (s *Service) History(ctx context.Context, batchRef string, limit int) ([]store.Report, error) {
	key := ""
	if batchRef != "" {
		b, err := s.store.Batch(ctx, batchRef, false)
		if err != nil {
			return nil, err
		}
		key = b.Key
	}
	return s.store.Reports(ctx, key, limit)
}

// Show returns the report with key ref, or the latest report of the batch
// ref names.
func (s *Service) Show(ctx context.Context, ref string) (*store.Report, error) {
	r, err := s.store.Report(ctx, ref)
	if !errors.Is(err, store.ErrNotFound) {
		return r, err
	}
	b, berr := s.store.Batch(ctx, ref, false)
	if berr != nil {
		if errors.Is(berr, store.ErrNotFound) {
			return nil, err // report the original miss
		}
		return nil, berr
	}
	return s.store.LatestReport(ctx, b.Key)
}

// Diff compares two reports, or the two most recent reports of a batch.
func (s *Service) Diff(ctx context.Context, opts diff.Options) (diff.Result, error) {
	if opts.Batch != "" {
		reports, err := s.History(ctx, opts.Batch, 2)
		if err != nil {
			return diff.Result{}, err
		}
		if len(reports) < 2 {
			return diff.Result{}, fmt.Errorf("batch %s has %d report(s), need 2 to diff", opts.Batch, len(reports))
		}
		return diff.Reports(&reports[1], &reports[0]), nil
	}

	older, err := s.Show(ctx, opts.Old)
	if err != nil {
		return diff.Result{}, err
	}
	newer, err := s.Show(ctx, opts.New)
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Reports(older, newer), nil
}

// Stats returns aggregate statistics.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}
