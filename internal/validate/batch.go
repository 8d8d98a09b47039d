// batch.go implements the batch-level contract check.

package validate

import "fmt"

// Posts checks a batch of n posts against maxPosts. Zero means no limit.
// Callers admitting a batch (the check command, the gate service) run this
// before scoring; the length validator itself never rejects a batch.
func Posts(n, maxPosts int) error {
	if maxPosts > 0 && n > maxPosts {
		return fmt.Errorf("%w: %w: %d posts exceeds limit of %d",
			ErrInvalidBatch, ErrTooManyPosts, n, maxPosts)
	}
	return nil
}
