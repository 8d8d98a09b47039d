// Package check runs the length gate over one batch and records the outcome.
//
// Evaluate is the pure path: it admits the batch against the configured post
// limit, applies the size limit and threshold, and returns a result without
// touching a store. Run drives a Checker (normally
// the gate service) and prints a summary, falling back to Evaluate when no
// store is available or a dry run was requested.
package check

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/qgate/internal/config"
	"github.com/jpl-au/qgate/internal/format"
	"github.com/jpl-au/qgate/internal/length"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/post"
	"github.com/jpl-au/qgate/internal/validate"
)

// Options configures a check.
type Options struct {
	Platform platform.Platform // Force a platform instead of detecting it
	Name     string            // Batch name recorded with a new batch
	Author   string            // Who ran the check
	DryRun   bool              // Validate without persisting
}

// Result is a validation result plus where it was recorded.
type Result struct {
	*length.Result
	Batch    string `json:"batch,omitempty"`     // Batch key, empty on dry run
	Report   string `json:"report,omitempty"`    // Report key, empty on dry run
	NewBatch bool   `json:"new_batch,omitempty"` // The batch was stored by this check
	DryRun   bool   `json:"dry_run,omitempty"`
}

// Checker validates and persists a batch.
type Checker interface {
	Check(ctx context.Context, b post.Batch, opts Options) (*Result, error)
}

// Validator returns a length validator configured from cfg. A nil cfg uses
// defaults.
func Validator(cfg *config.Config, p platform.Platform) *length.Validator {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return length.New(length.Options{
		Platform:          p,
		SamenessThreshold: cfg.SamenessThreshold(),
		MaxContent:        cfg.MaxContent(),
	})
}

// Admit rejects a batch with more posts than cfg allows. It is the only
// check that refuses a batch outright; bad posts become issues instead.
func Admit(b post.Batch, cfg *config.Config) error {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return validate.Posts(len(b.Posts), cfg.MaxPosts())
}

// Prepare applies a forced platform to posts that do not name one and
// derives missing IDs, so a batch is labelled and stored the same way
// whether or not it is persisted.
func Prepare(b post.Batch, opts Options) post.Batch {
	if p := platform.Normalise(opts.Platform); p.IsKnown() {
		b.Posts = post.WithDefault(b.Posts, p)
	}
	b.Posts = post.WithIDs(b.Posts)
	return b
}

// Evaluate validates b without persisting anything. Posts without an ID are
// labelled with their derived ID, as a recorded check would store them.
func Evaluate(b post.Batch, opts Options, cfg *config.Config) (*Result, error) {
	if err := Admit(b, cfg); err != nil {
		return nil, err
	}
	b = Prepare(b, opts)
	res, err := Validator(cfg, opts.Platform).Validate(b.Posts)
	if err != nil {
		return nil, err
	}
	return &Result{Result: res, DryRun: true}, nil
}

// Run checks b and writes a text summary to w. svc may be nil, in which case
// the check is a dry run against cfg.
func Run(ctx context.Context, w io.Writer, svc Checker, b post.Batch, opts Options, cfg *config.Config) (*Result, error) {
	var (
		res *Result
		err error
	)
	if svc == nil || opts.DryRun {
		res, err = Evaluate(b, opts, cfg)
	} else {
		res, err = svc.Check(ctx, b, opts)
	}
	if err != nil {
		return nil, err
	}

	if err := format.Summary(w, res.Result); err != nil {
		return res, err
	}
	switch {
	case res.DryRun:
		fmt.Fprintln(w, "\nDry run: nothing recorded")
	case res.NewBatch:
		fmt.Fprintf(w, "\nRecorded report %s for new batch %s\n", res.Report, res.Batch)
	default:
		fmt.Fprintf(w, "\nRecorded report %s for existing batch %s\n", res.Report, res.Batch)
	}
	return res, nil
}
