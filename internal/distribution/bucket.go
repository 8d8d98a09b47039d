// Package distribution places word counts into platform-specific buckets and
// builds histogram reports over a batch.
//
// Buckets are labelled ranges: "A-B" covers A <= words < B and the open-ended
// "A+" covers words >= A. Each platform's set is ascending and
// non-overlapping by construction in the platform registry; that is an
// invariant of the registry and is not re-checked on every assignment.
package distribution

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jpl-au/qgate/internal/platform"
)

// Bucket is a parsed bucket label.
type Bucket struct {
	Label string
	Min   int
	Max   int  // exclusive; unused when Open is true
	Open  bool // true for the final "A+" bucket
}

// Contains reports whether words falls inside the bucket.
func (b Bucket) Contains(words int) bool {
	if b.Open {
		return words >= b.Min
	}
	return words >= b.Min && words < b.Max
}

// ParseBucket parses a label of the form "A-B" or "A+".
func ParseBucket(label string) (Bucket, error) {
	if lo, ok := strings.CutSuffix(label, "+"); ok {
		n, err := bound(lo)
		if err != nil {
			return Bucket{}, fmt.Errorf("%w: %q: %w", ErrInvalidBucket, label, err)
		}
		return Bucket{Label: label, Min: n, Open: true}, nil
	}

	lo, hi, ok := strings.Cut(label, "-")
	if !ok {
		return Bucket{}, fmt.Errorf("%w: %q: expected A-B or A+", ErrInvalidBucket, label)
	}
	minW, err := bound(lo)
	if err != nil {
		return Bucket{}, fmt.Errorf("%w: %q: %w", ErrInvalidBucket, label, err)
	}
	maxW, err := bound(hi)
	if err != nil {
		return Bucket{}, fmt.Errorf("%w: %q: %w", ErrInvalidBucket, label, err)
	}
	if maxW <= minW {
		return Bucket{}, fmt.Errorf("%w: %q: upper bound must exceed lower bound", ErrInvalidBucket, label)
	}
	return Bucket{Label: label, Min: minW, Max: maxW}, nil
}

// bound parses a single non-negative bucket bound.
func bound(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bound %q is not a number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("bound %d is negative", n)
	}
	return n, nil
}

// MustParse parses every label and panics on the first malformed one.
// Intended for static registry data, like regexp.MustCompile.
func MustParse(labels []string) []Bucket {
	out := make([]Bucket, len(labels))
	for i, l := range labels {
		b, err := ParseBucket(l)
		if err != nil {
			panic("distribution: " + err.Error())
		}
		out[i] = b
	}
	return out
}

// Labels returns the labels of buckets, in order.
func Labels(buckets []Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Label
	}
	return out
}

var (
	parsedOnce sync.Once
	parsed     map[platform.Platform][]Bucket
)

// For returns the parsed bucket set for p. Unknown platforms get the generic
// set. The sets are parsed once from the platform registry and shared; callers
// must not modify the returned slice.
func For(p platform.Platform) []Bucket {
	parsedOnce.Do(func() {
		parsed = make(map[platform.Platform][]Bucket)
		for _, k := range append(platform.Known(), platform.Unknown) {
			parsed[k] = MustParse(platform.BucketLabels(k))
		}
	})
	if b, ok := parsed[p]; ok {
		return b
	}
	return parsed[platform.Unknown]
}
