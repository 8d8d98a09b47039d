// check.go implements running the length gate and recording its report.
//
// A check stores the batch first (SaveBatch dedupes identical content) and
// then a report against it, so rerunning the gate on the same posts builds a
// history on one batch instead of piling up copies.

package gate

import (
	"context"
	"fmt"

	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/check"
	"github.com/jpl-au/qgate/internal/post"
	"github.com/jpl-au/qgate/internal/store"
)

// Check validates b and records the result. A batch over the post limit is
// refused before anything is written. A forced platform is stamped on posts
// without one before the batch is stored.
func (s *Service) Check(ctx context.Context, b post.Batch, opts check.Options) (*check.Result, error) {
	if opts.DryRun {
		return check.Evaluate(b, opts, s.cfg)
	}
	if err := check.Admit(b, s.cfg); err != nil {
		return nil, err
	}

	b = check.Prepare(b, opts)
	res, err := check.Validator(s.cfg, opts.Platform).Validate(b.Posts)
	if err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = b.Name
	}
	author := authorOr(opts.Author)

	key, created, err := s.store.SaveBatch(ctx, b.Posts, store.SaveBatchOptions{
		Name:     name,
		Platform: res.Platform,
		Author:   author,
	})
	if err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}

	return s.record(ctx, key, created, author, &check.Result{Result: res})
}

// Recheck validates a stored batch again with the current configuration.
func (s *Service) Recheck(ctx context.Context, batchRef string, opts check.Options) (*check.Result, error) {
	b, err := s.store.Batch(ctx, batchRef, false)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Posts(ctx, b.Key)
	if err != nil {
		return nil, err
	}
	posts := make([]post.Post, len(rows))
	for i, r := range rows {
		posts[i] = r.Post
	}

	// The batch keeps the platform it was first checked against.
	p := opts.Platform
	if p == "" {
		p = b.Platform
	}
	res, err := check.Validator(s.cfg, p).Validate(posts)
	if err != nil {
		return nil, err
	}
	if opts.DryRun {
		return &check.Result{Result: res, Batch: b.Key, DryRun: true}, nil
	}
	return s.record(ctx, b.Key, false, authorOr(opts.Author), &check.Result{Result: res})
}

// record saves the report for batchKey and fires a ReportEvent.
func (s *Service) record(ctx context.Context, batchKey string, created bool, author string, res *check.Result) (*check.Result, error) {
	r := store.NewReport(batchKey, author, res.Result)
	if err := s.store.SaveReport(ctx, r); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	res.Batch = batchKey
	res.Report = r.Key
	res.NewBatch = created

	s.fireEvent(extension.ReportEvent{
		Batch:    batchKey,
		Report:   r.Key,
		Platform: res.Platform,
		Passed:   res.Passed,
		Issues:   len(res.Issues),
		Warnings: len(res.Warnings),
		Author:   author,
		NewBatch: created,
	})
	return res, nil
}

func authorOr(author string) string {
	if author == "" {
		return DefaultAuthor
	}
	return author
}
