// Package rm removes and restores batches.
//
// Removal is always soft: the batch and its reports are hidden from listings
// and history but remain recoverable via restore until vacuum purges them.
package rm

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/qgate/internal/service"
)

// Result contains the outcome of a remove or restore operation.
type Result struct {
	Removed  []string `json:"removed,omitempty"`  // Keys of removed batches
	Restored []string `json:"restored,omitempty"` // Keys of restored batches
}

// Run removes each batch named by refs (key or name). It stops at the first
// failure; batches removed before it stay removed and are listed in the
// result.
func Run(ctx context.Context, w io.Writer, svc service.Service, refs []string) (Result, error) {
	var result Result
	for _, ref := range refs {
		b, err := svc.Batch(ctx, ref, false)
		if err != nil {
			return result, fmt.Errorf("%s: %w", ref, err)
		}
		if err := svc.Remove(ctx, b.Key); err != nil {
			return result, fmt.Errorf("%s: %w", ref, err)
		}
		result.Removed = append(result.Removed, b.Key)
		fmt.Fprintf(w, "Removed %s%s\n", b.Key, named(b.Name))
	}
	return result, nil
}

// Restore brings back each removed batch named by refs.
func Restore(ctx context.Context, w io.Writer, svc service.Service, refs []string) (Result, error) {
	var result Result
	for _, ref := range refs {
		b, err := svc.Batch(ctx, ref, true)
		if err != nil {
			return result, fmt.Errorf("%s: %w", ref, err)
		}
		if b.DeletedAt == nil {
			return result, fmt.Errorf("%s: batch is not removed", ref)
		}
		if err := svc.Restore(ctx, b.Key); err != nil {
			return result, fmt.Errorf("%s: %w", ref, err)
		}
		result.Restored = append(result.Restored, b.Key)
		fmt.Fprintf(w, "Restored %s%s\n", b.Key, named(b.Name))
	}
	return result, nil
}

func named(name string) string {
	if name == "" {
		return ""
	}
	return " (" + name + ")"
}
