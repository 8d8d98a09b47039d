// vacuum.go implements permanent deletion of soft-deleted batches.
//
// Soft delete keeps a removed batch recoverable; vacuum removes that safety
// net. olderThan keeps recent deletions recoverable while clearing old trash.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Vacuum permanently removes soft-deleted batches together with their posts
// and reports. When olderThan is non-nil only batches deleted before that
// duration ago are removed. Returns the total number of rows deleted.
func (s *SQLiteStore) Vacuum(ctx context.Context, olderThan *time.Duration) (int64, error) {
	var total int64

	err := s.Tx(ctx, func(tx *sql.Tx) error {
		cond := `deleted_at IS NOT NULL`
		var args []any
		if olderThan != nil {
			cond += ` AND deleted_at < ?`
			args = append(args, time.Now().Add(-*olderThan).Unix())
		}
		sub := `SELECT key FROM batches WHERE ` + cond

		for _, step := range []struct{ name, query string }{
			{"posts", `DELETE FROM posts WHERE batch_key IN (` + sub + `)`},
			{"reports", `DELETE FROM reports WHERE batch_key IN (` + sub + `)`},
			{"batches", `DELETE FROM batches WHERE ` + cond},
		} {
			result, err := tx.ExecContext(ctx, step.query, args...)
			if err != nil {
				return fmt.Errorf("vacuum %s: %w", step.name, err)
			}
			if n, err := result.RowsAffected(); err == nil {
				total += n
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
