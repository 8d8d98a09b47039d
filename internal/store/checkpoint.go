package store

import (
	"context"
	"fmt"
)

// Checkpoint writes all WAL data back to the main database file and truncates
// the WAL, removing the -wal and -shm files. Called on clean shutdown of the
// CLI and the MCP server.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}
