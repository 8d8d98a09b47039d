// read.go implements batch and report retrieval for the SQLite store.
//
// Reports belong to batches: a report whose batch is soft-deleted is hidden
// from Reports and LatestReport, but stays reachable by key so a deleted
// batch's history can still be inspected before restore.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jpl-au/qgate/internal/platform"
)

// Batch returns the batch with key ref. If no key matches, ref is treated as
// a batch name and the most recent batch with that name is returned.
func (s *SQLiteStore) Batch(ctx context.Context, ref string, includeDeleted bool) (*Batch, error) {
	filter := ``
	if !includeDeleted {
		filter = ` AND deleted_at IS NULL`
	}

	b, err := scanOne(s.db.QueryRowContext(ctx,
		`SELECT `+batchColumns+` FROM batches WHERE key = ?`+filter, ref), scanBatch, "batch", ref)
	if !errors.Is(err, ErrNotFound) {
		return b, err
	}
	return scanOne(s.db.QueryRowContext(ctx,
		`SELECT `+batchColumns+` FROM batches WHERE name = ?`+filter+` ORDER BY created_at DESC, id DESC LIMIT 1`, ref),
		scanBatch, "batch", ref)
}

// Posts returns a batch's posts in import order.
func (s *SQLiteStore) Posts(ctx context.Context, batchKey string) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT batch_key, idx, post_id, content, platform, words
		FROM posts WHERE batch_key = ? ORDER BY idx`, batchKey)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var out []Post
	for rows.Next() {
		var p Post
		var pl sql.NullString
		if err := rows.Scan(&p.BatchKey, &p.Index, &p.ID, &p.Content, &pl, &p.Words); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		if pl.Valid {
			p.Platform = platform.Platform(pl.String)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListBatches returns batches newest first. deletedOnly lists the trash.
func (s *SQLiteStore) ListBatches(ctx context.Context, includeDeleted, deletedOnly bool) ([]Batch, error) {
	q := `SELECT ` + batchColumns + ` FROM batches`
	switch {
	case deletedOnly:
		q += ` WHERE deleted_at IS NOT NULL`
	case !includeDeleted:
		q += ` WHERE deleted_at IS NULL`
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	return scanBatches(rows)
}

// Report returns the report with the given key.
func (s *SQLiteStore) Report(ctx context.Context, key string) (*Report, error) {
	return scanOne(s.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM reports r WHERE r.key = ?`, key), scanReport, "report", key)
}

// Reports returns reports newest first, optionally for one batch.
func (s *SQLiteStore) Reports(ctx context.Context, batchKey string, limit int) ([]Report, error) {
	q := `SELECT ` + reportColumns + ` FROM reports r
		JOIN batches b ON b.key = r.batch_key
		WHERE b.deleted_at IS NULL`
	var args []any
	if batchKey != "" {
		q += ` AND r.batch_key = ?`
		args = append(args, batchKey)
	}
	q += ` ORDER BY r.created_at DESC, r.id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LatestReport returns the newest report for an active batch.
func (s *SQLiteStore) LatestReport(ctx context.Context, batchKey string) (*Report, error) {
	return scanOne(s.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports r
		JOIN batches b ON b.key = r.batch_key
		WHERE b.deleted_at IS NULL AND r.batch_key = ?
		ORDER BY r.created_at DESC, r.id DESC LIMIT 1`, batchKey), scanReport, "report for batch", batchKey)
}
