// registry.go holds the static length rules and bucket schemes per platform.
//
// Separated from platform.go so the numbers live in one place. Both tables
// are lookups keyed by Platform; adding a platform means adding one row to
// each table and an alias in platform.go.
//
// Design: the tables are built at package init and never written again, so
// concurrent readers need no locking. Buckets are expressed as labels ("A-B"
// with B exclusive, or "A+" for the open final bucket) because the labels
// are what reports show; the distribution package parses them.

package platform

// Spec holds the word-count thresholds for one platform.
//
// MinWords and MaxWords are the pass/fail bounds. OptimalMin and OptimalMax
// describe the narrower ideal range used for the optimal ratio.
type Spec struct {
	Platform   Platform `json:"platform" yaml:"platform"`
	MinWords   int      `json:"min_words" yaml:"min_words"`
	MaxWords   int      `json:"max_words" yaml:"max_words"`
	OptimalMin int      `json:"optimal_min" yaml:"optimal_min"`
	OptimalMax int      `json:"optimal_max" yaml:"optimal_max"`
}

// Within reports whether words lies inside the pass/fail bounds.
func (s Spec) Within(words int) bool {
	return words >= s.MinWords && words <= s.MaxWords
}

// Optimal reports whether words lies inside the optimal range.
func (s Spec) Optimal(words int) bool {
	return words >= s.OptimalMin && words <= s.OptimalMax
}

var specs = map[Platform]Spec{
	Twitter:  {Platform: Twitter, MinWords: 5, MaxWords: 50, OptimalMin: 12, OptimalMax: 30},
	LinkedIn: {Platform: LinkedIn, MinWords: 100, MaxWords: 400, OptimalMin: 150, OptimalMax: 300},
	Facebook: {Platform: Facebook, MinWords: 20, MaxWords: 250, OptimalMin: 40, OptimalMax: 120},
	Email:    {Platform: Email, MinWords: 75, MaxWords: 600, OptimalMin: 150, OptimalMax: 300},
	Blog:     {Platform: Blog, MinWords: 800, MaxWords: 3500, OptimalMin: 1500, OptimalMax: 2500},
}

// genericSpec applies to unknown and mixed batches.
var genericSpec = Spec{Platform: Unknown, MinWords: 50, MaxWords: 500, OptimalMin: 100, OptimalMax: 300}

var buckets = map[Platform][]string{
	Twitter:  {"0-10", "10-15", "15-20", "20-30", "30+"},
	LinkedIn: {"0-100", "100-150", "150-200", "200-300", "300+"},
	Facebook: {"0-40", "40-80", "80-120", "120-200", "200+"},
	Email:    {"0-100", "100-200", "200-300", "300-500", "500+"},
	Blog:     {"0-1000", "1000-1500", "1500-2000", "2000-2500", "2500+"},
}

// genericBuckets spans 0-300+ for unknown and mixed batches.
var genericBuckets = []string{"0-50", "50-100", "100-150", "150-200", "200-300", "300+"}

// SpecFor returns the thresholds for p, falling back to the generic spec
// when p is not a known platform.
func SpecFor(p Platform) Spec {
	if s, ok := specs[p]; ok {
		return s
	}
	return genericSpec
}

// BucketLabels returns the ordered bucket labels for p, falling back to the
// generic set when p is not a known platform. The returned slice is a copy.
func BucketLabels(p Platform) []string {
	src, ok := buckets[p]
	if !ok {
		src = genericBuckets
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
