// maint.go implements batch removal and database maintenance for the Service
// layer.
//
// Remove is a soft delete. Vacuum is the only way to permanently delete data,
// so losing a batch's history always takes an explicit maintenance step.

package gate

import (
	"context"
	"time"

	"github.com/jpl-au/qgate/extension"
)

// Remove soft-deletes a batch.
func (s *Service) Remove(ctx context.Context, batchRef string) error {
	b, err := s.store.Batch(ctx, batchRef, false)
	if err != nil {
		return err
	}
	if err := s.store.DeleteBatch(ctx, b.Key); err != nil {
		return err
	}
	s.fireEvent(extension.BatchEvent{Batch: b.Key})
	return nil
}

// Restore recovers a soft-deleted batch. batchRef may be a key or a name;
// names resolve to the most recent batch with that name, deleted or not.
func (s *Service) Restore(ctx context.Context, batchRef string) error {
	b, err := s.store.Batch(ctx, batchRef, true)
	if err != nil {
		return err
	}
	if err := s.store.RestoreBatch(ctx, b.Key); err != nil {
		return err
	}
	s.fireEvent(extension.BatchEvent{Batch: b.Key, Restored: true})
	return nil
}

// Vacuum permanently removes soft-deleted batches.
func (s *Service) Vacuum(ctx context.Context, olderThan *time.Duration) (int64, error) {
	return s.store.Vacuum(ctx, olderThan)
}

// Checkpoint flushes the WAL to the main database file. Removes the -wal and
// -shm files from the filesystem, useful before backup operations.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}
