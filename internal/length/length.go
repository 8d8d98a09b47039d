// Package length implements the length stage of the post quality gate.
//
// A Validator takes a batch of posts, works out which platform the batch was
// written for, scores every post against that platform's word-count rules and
// assembles a Result. It is one stage among several; other stages (hooks,
// calls to action) run independently and a caller aggregates their results.
//
// Validation is a pure, single-pass function of its input. A Validator holds
// only immutable options and may be shared between goroutines.
package length

import (
	"fmt"

	"github.com/jpl-au/qgate/internal/distribution"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/post"
	"github.com/jpl-au/qgate/internal/validate"
)

// DefaultSamenessThreshold is the sameness score at or above which a batch
// is flagged as suspiciously uniform.
const DefaultSamenessThreshold = 0.9

// minSamenessPosts is the smallest batch for which a sameness warning is
// raised. One or two posts are trivially uniform.
const minSamenessPosts = 3

// Options configures a Validator.
type Options struct {
	// Platform forces the platform instead of detecting it from the batch.
	// Ignored unless it normalises to a known platform.
	Platform platform.Platform

	// SamenessThreshold enables the uniformity warning when > 0.
	SamenessThreshold float64

	// MaxContent bounds each post in bytes when > 0. A larger post is
	// recorded as an issue and not scored.
	MaxContent int64
}

// Result is the outcome of validating one batch.
//
// Issues is empty exactly when every post is valid text within the
// platform's [MinWords, MaxWords] bounds, and Passed mirrors that. Posts
// counts every post handed over; averages, ratios and the distribution cover
// only the posts that could be scored. Warnings are advisory and never
// affect Passed.
type Result struct {
	Passed        bool                 `json:"passed"`
	Platform      platform.Platform    `json:"platform"`
	Spec          platform.Spec        `json:"spec"`
	Posts         int                  `json:"posts"`
	OptimalCount  int                  `json:"optimal_count"`
	AverageLength float64              `json:"average_length"`
	OptimalRatio  float64              `json:"optimal_ratio"`
	SamenessRatio float64              `json:"sameness_ratio"`
	Distribution  *distribution.Report `json:"distribution"`
	Issues        []string             `json:"issues"`
	Warnings      []string             `json:"warnings,omitempty"`
	Metric        string               `json:"metric"`
}

// Validator scores batches against platform length rules.
type Validator struct {
	opts Options
}

// New returns a Validator with the given options.
func New(opts Options) *Validator {
	opts.Platform = platform.Normalise(opts.Platform)
	return &Validator{opts: opts}
}

// Validate scores posts with default options: detected platform, default
// sameness threshold, no size limit.
func Validate(posts []post.Post) (*Result, error) {
	return New(Options{SamenessThreshold: DefaultSamenessThreshold}).Validate(posts)
}

// Platform returns the platform the validator would use for posts.
func (v *Validator) Platform(posts []post.Post) platform.Platform {
	if v.opts.Platform.IsKnown() {
		return v.opts.Platform
	}
	return post.Detect(posts)
}

// Validate scores posts. A post that breaks the content contract (see
// package validate) is recorded as an issue and left out of the scores; the
// batch itself is never rejected and the error is always nil.
func (v *Validator) Validate(posts []post.Post) (*Result, error) {
	p := v.Platform(posts)
	spec := platform.SpecFor(p)

	r := &Result{
		Platform: p,
		Spec:     spec,
		Posts:    len(posts),
		Issues:   []string{},
	}

	counts := make([]int, 0, len(posts))
	total := 0
	for i, ps := range posts {
		if err := validate.Content(ps.Content, v.opts.MaxContent); err != nil {
			r.Issues = append(r.Issues, fmt.Sprintf("%s: %v", ps.Label(i), err))
			continue
		}

		words := ps.WordCount()
		counts = append(counts, words)
		total += words

		switch {
		case words < spec.MinWords:
			r.Issues = append(r.Issues, fmt.Sprintf("%s: %d words, below minimum of %d for %s",
				ps.Label(i), words, spec.MinWords, p))
		case words > spec.MaxWords:
			r.Issues = append(r.Issues, fmt.Sprintf("%s: %d words, above maximum of %d for %s",
				ps.Label(i), words, spec.MaxWords, p))
		}
		if spec.Optimal(words) {
			r.OptimalCount++
		}
	}

	if scored := len(counts); scored > 0 {
		r.AverageLength = float64(total) / float64(scored)
		r.OptimalRatio = float64(r.OptimalCount) / float64(scored)
	}
	r.SamenessRatio = Sameness(counts)
	r.Distribution = distribution.Calculate(counts, p)
	r.Passed = len(r.Issues) == 0
	r.Metric = fmt.Sprintf("%d/%d posts in optimal range (%d-%d words for %s)",
		r.OptimalCount, len(posts), spec.OptimalMin, spec.OptimalMax, p)

	if t := v.opts.SamenessThreshold; t > 0 && len(counts) >= minSamenessPosts && r.SamenessRatio >= t {
		r.Warnings = append(r.Warnings, fmt.Sprintf("lengths are suspiciously uniform: sameness %.2f >= %.2f", r.SamenessRatio, t))
	}

	return r, nil
}
