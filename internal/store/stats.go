// stats.go implements aggregate queries for operational visibility.
//
// None of these load post content; they use COUNT and MIN/MAX directly.

package store

import (
	"context"
	"fmt"
)

// Stats returns aggregate database statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{ByPlatform: make(map[string]int64)}

	err := s.db.QueryRowContext(ctx, `SELECT
			COUNT(*),
			COALESCE(SUM(posts), 0),
			COUNT(DISTINCT author),
			COALESCE(MIN(created_at), 0),
			COALESCE(MAX(created_at), 0)
		FROM batches WHERE deleted_at IS NULL`).
		Scan(&st.Batches, &st.Posts, &st.Authors, &st.OldestBatch, &st.NewestBatch)
	if err != nil {
		return nil, fmt.Errorf("batch stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(MIN(deleted_at), 0)
		FROM batches WHERE deleted_at IS NOT NULL`).
		Scan(&st.DeletedBatches, &st.OldestDeletedAt)
	if err != nil {
		return nil, fmt.Errorf("deleted stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `SELECT
			COUNT(*),
			COALESCE(SUM(r.passed), 0)
		FROM reports r JOIN batches b ON b.key = r.batch_key
		WHERE b.deleted_at IS NULL`).
		Scan(&st.Reports, &st.Passed)
	if err != nil {
		return nil, fmt.Errorf("report stats: %w", err)
	}
	st.Failed = st.Reports - st.Passed

	rows, err := s.db.QueryContext(ctx, `SELECT platform, COUNT(*) FROM batches
		WHERE deleted_at IS NULL GROUP BY platform ORDER BY platform`)
	if err != nil {
		return nil, fmt.Errorf("platform stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p string
		var n int64
		if err := rows.Scan(&p, &n); err != nil {
			return nil, fmt.Errorf("platform stats: %w", err)
		}
		st.ByPlatform[p] = n
	}
	return st, rows.Err()
}
