package distribution

import "log/slog"

// Assign returns the label of the first bucket that contains words.
//
// A miss means the bucket set does not cover the count, which is a registry
// bug rather than a property of the post. Assign then falls back to the first
// label (or FallbackLabel for an empty set) so the report stays well-formed,
// and logs a warning so the gap is visible.
func Assign(words int, buckets []Bucket) string {
	for _, b := range buckets {
		if b.Contains(words) {
			return b.Label
		}
	}

	fallback := FallbackLabel
	if len(buckets) > 0 {
		fallback = buckets[0].Label
	}
	slog.Warn("word count matched no bucket",
		"words", words,
		"buckets", Labels(buckets),
		"fallback", fallback)
	return fallback
}
