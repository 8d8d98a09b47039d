// interfaces.go defines the storage abstraction for batches and reports.
//
// The interfaces are granular (Reader, Writer, Maintainer) so consumers
// depend only on the capabilities they need.
//
// Batches are soft-deleted: a removed batch and its reports stay recoverable
// until Vacuum purges them.

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jpl-au/qgate/internal/post"
)

// Reader defines read-only operations.
type Reader interface {
	// Batch retrieves a batch by key, or by name when no key matches (the
	// most recent batch with that name wins).
	Batch(ctx context.Context, ref string, includeDeleted bool) (*Batch, error)

	// Posts returns the posts of a batch in import order.
	Posts(ctx context.Context, batchKey string) ([]Post, error)

	// ListBatches returns batches newest first.
	ListBatches(ctx context.Context, includeDeleted, deletedOnly bool) ([]Batch, error)

	// Report retrieves a report by key.
	Report(ctx context.Context, key string) (*Report, error)

	// Reports returns reports newest first. An empty batchKey lists reports
	// across all active batches. limit <= 0 means no limit.
	Reports(ctx context.Context, batchKey string, limit int) ([]Report, error)

	// LatestReport returns the most recent report for a batch.
	LatestReport(ctx context.Context, batchKey string) (*Report, error)

	// Stats returns aggregate database statistics.
	Stats(ctx context.Context) (*Stats, error)
}

// Writer defines operations that modify data.
type Writer interface {
	// SaveBatch stores posts as a new batch, or returns the key of an active
	// batch with the same fingerprint. created reports which happened.
	SaveBatch(ctx context.Context, posts []post.Post, opts SaveBatchOptions) (key string, created bool, err error)

	// SaveReport stores r against its batch, filling in Key and CreatedAt.
	SaveReport(ctx context.Context, r *Report) error

	// DeleteBatch marks a batch as deleted. Its reports disappear from
	// listings until the batch is restored.
	DeleteBatch(ctx context.Context, key string) error

	// RestoreBatch recovers a soft-deleted batch.
	RestoreBatch(ctx context.Context, key string) error
}

// Maintainer defines operations for database maintenance and lifecycle.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for extensions needing custom tables.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// Vacuum permanently removes soft-deleted batches with their posts and
	// reports.
	Vacuum(ctx context.Context, olderThan *time.Duration) (int64, error)
}

// Store defines the persistence interface for batches and reports.
type Store interface {
	Reader
	Writer
	Maintainer
}
