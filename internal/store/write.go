// write.go implements batch and report creation and soft deletion.
//
// Batches are written once. SaveBatch looks up the content fingerprint
// inside the same transaction as the insert, so two concurrent imports of the
// same posts cannot both create a batch.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/post"
)

// SaveBatch stores posts as a batch. When an active batch with the same
// fingerprint exists its key is returned with created=false and nothing is
// written.
func (s *SQLiteStore) SaveBatch(ctx context.Context, posts []post.Post, opts SaveBatchOptions) (string, bool, error) {
	fp := post.Fingerprint(opts.Platform, posts)

	var key string
	var created bool
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT key FROM batches
			WHERE fingerprint = ? AND deleted_at IS NULL
			ORDER BY created_at DESC, id DESC LIMIT 1`, fp).Scan(&key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("lookup fingerprint: %w", err)
		}

		key, err = genID()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO batches (key, fingerprint, name, platform, posts, author, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			key, fp, nilIfEmpty(opts.Name), platform.Normalise(opts.Platform).String(), len(posts), opts.Author, time.Now().Unix())
		if err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO posts (batch_key, idx, post_id, content, platform, words)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare post insert: %w", err)
		}
		defer stmt.Close()

		for i, p := range posts {
			id := p.ID
			if id == "" {
				id = post.DeriveID(p.Content)
			}
			var pl string
			if p.Platform != "" {
				pl = platform.Normalise(p.Platform).String()
			}
			if _, err := stmt.ExecContext(ctx, key, i, id, p.Content, nilIfEmpty(pl), p.WordCount()); err != nil {
				return fmt.Errorf("insert post %d: %w", i+1, err)
			}
		}
		created = true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return key, created, nil
}

// SaveReport stores r, assigning r.Key and r.CreatedAt. The batch must
// exist and not be deleted.
func (s *SQLiteStore) SaveReport(ctx context.Context, r *Report) error {
	dist, err := json.Marshal(r.Distribution)
	if err != nil {
		return fmt.Errorf("encode distribution: %w", err)
	}
	issues := r.Issues
	if issues == nil {
		issues = []string{}
	}
	iss, err := json.Marshal(issues)
	if err != nil {
		return fmt.Errorf("encode issues: %w", err)
	}
	var warn *string
	if len(r.Warnings) > 0 {
		b, err := json.Marshal(r.Warnings)
		if err != nil {
			return fmt.Errorf("encode warnings: %w", err)
		}
		w := string(b)
		warn = &w
	}

	key, err := genID()
	if err != nil {
		return err
	}
	now := time.Now().Unix()

	err = s.Tx(ctx, func(tx *sql.Tx) error {
		var n int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM batches WHERE key = ? AND deleted_at IS NULL`, r.BatchKey).Scan(&n)
		if err != nil {
			return fmt.Errorf("check batch: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("batch %s: %w", r.BatchKey, ErrNotFound)
		}

		passed := 0
		if r.Passed {
			passed = 1
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO reports (key, batch_key, passed, platform, posts, optimal, avg,
			optimal_ratio, sameness, distribution, issues, warnings, metric, author, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			key, r.BatchKey, passed, platform.Normalise(r.Platform).String(), r.Posts, r.Optimal, r.AverageLength,
			r.OptimalRatio, r.Sameness, string(dist), string(iss), warn, r.Metric, r.Author, now)
		if err != nil {
			return fmt.Errorf("insert report: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.Key = key
	r.CreatedAt = now
	return nil
}

// DeleteBatch soft-deletes a batch. Returns ErrNotFound if the batch doesn't
// exist or is already deleted.
func (s *SQLiteStore) DeleteBatch(ctx context.Context, key string) error {
	return s.setDeleted(ctx, key, `UPDATE batches SET deleted_at = ? WHERE key = ? AND deleted_at IS NULL`, time.Now().Unix())
}

// RestoreBatch clears deleted_at on a soft-deleted batch. Returns ErrNotFound
// if the batch doesn't exist or isn't deleted.
func (s *SQLiteStore) RestoreBatch(ctx context.Context, key string) error {
	return s.setDeleted(ctx, key, `UPDATE batches SET deleted_at = ? WHERE key = ? AND deleted_at IS NOT NULL`, nil)
}

func (s *SQLiteStore) setDeleted(ctx context.Context, key, query string, at any) error {
	result, err := s.db.ExecContext(ctx, query, at, key)
	if err != nil {
		return fmt.Errorf("update batch %s: %w", key, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update batch %s: %w", key, err)
	}
	if rows == 0 {
		return fmt.Errorf("batch %s: %w", key, ErrNotFound)
	}
	return nil
}

// nilIfEmpty stores empty strings as NULL.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
