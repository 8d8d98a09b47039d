// Package service defines the shared interface for gate operations.
// Commands and extensions depend on this interface rather than concrete
// implementations, enabling testing with mocks and future backend changes.
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jpl-au/qgate/internal/check"
	"github.com/jpl-au/qgate/internal/diff"
	"github.com/jpl-au/qgate/internal/store"
)

// Service defines all batch and report operations.
//
// Extensions should use gate.New() to obtain a Service implementation.
// Always call Close() when done (use defer).
//
// Example:
//
//	svc, err := gate.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	res, err := svc.Check(ctx, batch, check.Options{Author: "ci"})
type Service interface {
	// Close releases database resources. Always defer this after New().
	Close() error

	// Check validates a batch with the configured limits and threshold, stores
	// the batch (or reuses an identical active one) and records a report.
	// With opts.DryRun nothing is stored. Malformed posts are issues; only a
	// batch over limits.max_posts is refused, with an error wrapping
	// validate.ErrInvalidBatch, and nothing is stored.
	check.Checker

	// Batch resolves a batch by key or name.
	// Returns store.ErrNotFound if nothing matches.
	Batch(ctx context.Context, ref string, includeDeleted bool) (*store.Batch, error)

	// Posts returns the posts of a batch in import order.
	Posts(ctx context.Context, batchRef string) ([]store.Post, error)

	// ListBatches returns batches newest first. Set deletedOnly to list the
	// trash.
	ListBatches(ctx context.Context, includeDeleted, deletedOnly bool) ([]store.Batch, error)

	// Recheck validates a stored batch again with the current configuration
	// and records a new report against it.
	Recheck(ctx context.Context, batchRef string, opts check.Options) (*check.Result, error)

	// History returns reports newest first. An empty batchRef lists reports
	// across all active batches. limit <= 0 means no limit.
	History(ctx context.Context, batchRef string, limit int) ([]store.Report, error)

	// Show returns a report by key. When ref is not a report key it is
	// resolved as a batch and that batch's latest report is returned.
	Show(ctx context.Context, ref string) (*store.Report, error)

	// Diff compares two reports. See diff.Options for the selection modes.
	diff.Differ

	// Remove soft-deletes a batch, hiding it and its reports.
	Remove(ctx context.Context, batchRef string) error

	// Restore recovers a soft-deleted batch.
	Restore(ctx context.Context, batchRef string) error

	// Vacuum permanently removes soft-deleted batches. olderThan limits the
	// purge to deletions older than the duration; nil purges everything.
	Vacuum(ctx context.Context, olderThan *time.Duration) (int64, error)

	// Stats returns aggregate statistics.
	Stats(ctx context.Context) (*store.Stats, error)

	// Checkpoint flushes the WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// DB exposes the database for extensions needing custom tables.
	DB() *sql.DB

	// Dir returns the .qgate directory holding the database.
	Dir() string

	// Tx runs fn inside a transaction, rolling back on error.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error
}
