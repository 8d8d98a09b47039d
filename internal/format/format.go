// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// validation and storage while this package handles presentation concerns
// like column alignment, distribution bars and markdown rendering.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jpl-au/qgate/internal/diff"
	"github.com/jpl-au/qgate/internal/distribution"
	"github.com/jpl-au/qgate/internal/length"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/store"
)

// barWidth is the width of the longest distribution bar.
const barWidth = 30

// Summary prints a validation result as plain text.
func Summary(w io.Writer, r *length.Result) error {
	status := "PASS"
	if !r.Passed {
		status = "FAIL"
	}
	fmt.Fprintf(w, "%s  %s\n", status, r.Metric)
	fmt.Fprintf(w, "platform:  %s (%d-%d words, optimal %d-%d)\n",
		r.Platform, r.Spec.MinWords, r.Spec.MaxWords, r.Spec.OptimalMin, r.Spec.OptimalMax)
	fmt.Fprintf(w, "posts:     %d\n", r.Posts)
	fmt.Fprintf(w, "average:   %.1f words\n", r.AverageLength)
	fmt.Fprintf(w, "optimal:   %.0f%%\n", r.OptimalRatio*100)
	fmt.Fprintf(w, "sameness:  %.2f\n", r.SamenessRatio)

	if r.Distribution != nil && r.Distribution.Len() > 0 {
		fmt.Fprintln(w, "\ndistribution:")
		Distribution(w, r.Distribution)
	}
	if len(r.Issues) > 0 {
		fmt.Fprintf(w, "\nissues (%d):\n", len(r.Issues))
		for _, issue := range r.Issues {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\nwarnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}
	return nil
}

// Distribution prints one line per bucket with a proportional bar.
func Distribution(w io.Writer, d *distribution.Report) {
	width := 0
	most := 0
	d.Each(func(label string, count int) {
		width = max(width, len(label))
		most = max(most, count)
	})
	d.Each(func(label string, count int) {
		n := 0
		if most > 0 {
			n = count * barWidth / most
		}
		fmt.Fprintf(w, "  %-*s  %4d  %s\n", width, label, count, strings.Repeat("#", n))
	})
}

// Markdown renders a validation result as a markdown report.
func Markdown(r *length.Result, title string) string {
	var b strings.Builder
	if title == "" {
		title = "Length report"
	}
	status := "passed"
	if !r.Passed {
		status = "failed"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Result:** %s  \n**Platform:** %s  \n**Metric:** %s\n\n", status, r.Platform, r.Metric)

	b.WriteString("| Measure | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Posts | %d |\n", r.Posts)
	fmt.Fprintf(&b, "| Average length | %.1f words |\n", r.AverageLength)
	fmt.Fprintf(&b, "| Optimal ratio | %.0f%% |\n", r.OptimalRatio*100)
	fmt.Fprintf(&b, "| Sameness | %.2f |\n", r.SamenessRatio)
	fmt.Fprintf(&b, "| Bounds | %d-%d words |\n", r.Spec.MinWords, r.Spec.MaxWords)
	fmt.Fprintf(&b, "| Optimal range | %d-%d words |\n", r.Spec.OptimalMin, r.Spec.OptimalMax)

	if r.Distribution != nil && r.Distribution.Len() > 0 {
		b.WriteString("\n## Distribution\n\n| Bucket | Posts |\n|---|---|\n")
		r.Distribution.Each(func(label string, count int) {
			fmt.Fprintf(&b, "| %s | %d |\n", label, count)
		})
	}
	if len(r.Issues) > 0 {
		b.WriteString("\n## Issues\n\n")
		for _, issue := range r.Issues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, warn := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", warn)
		}
	}
	return b.String()
}

// Batches prints batches in simple list format.
func Batches(w io.Writer, batches []store.Batch) error {
	for _, b := range batches {
		prefix := ""
		if b.DeletedAt != nil {
			prefix = "[deleted] "
		}
		fmt.Fprintf(w, "%s  %s%s\n", b.Key, prefix, batchName(b))
	}
	return nil
}

// BatchesLong prints batches with platform, size, date and author.
func BatchesLong(w io.Writer, batches []store.Batch) error {
	if len(batches) == 0 {
		return nil
	}

	// Find max name length for alignment
	maxName := 4 // minimum "NAME"
	for _, b := range batches {
		maxName = max(maxName, len(batchName(b)))
	}

	fmt.Fprintf(w, "%-8s  %-*s  %-8s  %5s  %-16s  %s\n", "KEY", maxName, "NAME", "PLATFORM", "POSTS", "CREATED", "AUTHOR")

	for _, b := range batches {
		created := time.Unix(b.CreatedAt, 0).Format("2006-01-02 15:04")
		author := b.Author
		if author == "" {
			author = "-"
		}
		deleted := ""
		if b.DeletedAt != nil {
			deleted = " [deleted]"
		}
		fmt.Fprintf(w, "%s  %-*s  %-8s  %5d  %s  %s%s\n",
			b.Key, maxName, batchName(b), b.Platform, b.Posts, created, author, deleted)
	}
	return nil
}

func batchName(b store.Batch) string {
	if b.Name == "" {
		return "-"
	}
	return b.Name
}

// History prints reports newest first, one per line.
func History(w io.Writer, reports []store.Report) error {
	for _, r := range reports {
		t := time.Unix(r.CreatedAt, 0)
		status := "pass"
		if !r.Passed {
			status = "FAIL"
		}
		author := r.Author
		if author == "" {
			author = "-"
		}
		fmt.Fprintf(w, "%s  %s  %s  %-16s  %-8s  %s\n",
			r.Key,
			status,
			t.Format("2006-01-02 15:04"),
			author,
			r.BatchKey,
			r.Metric,
		)
	}
	return nil
}

// HistoryDiff prints reports with diffs between consecutive runs.
func HistoryDiff(w io.Writer, reports []store.Report, colour bool) error {
	// Reports are in descending order (newest first)
	for i := 0; i < len(reports)-1; i++ {
		newer := reports[i]
		older := reports[i+1]

		t := time.Unix(newer.CreatedAt, 0)
		fmt.Fprintf(w, "=== %s -> %s (%s by %s) ===\n",
			older.Key, newer.Key,
			t.Format("2006-01-02 15:04"),
			newer.Author,
		)

		r := diff.Reports(&older, &newer)
		fmt.Fprint(w, r.Format(colour))
		fmt.Fprintln(w)
	}
	return nil
}

// Stats prints aggregate statistics.
func Stats(w io.Writer, s *store.Stats) error {
	fmt.Fprintf(w, "batches:   %d (%d deleted)\n", s.Batches, s.DeletedBatches)
	fmt.Fprintf(w, "posts:     %d\n", s.Posts)
	fmt.Fprintf(w, "reports:   %d (%d passed, %d failed)\n", s.Reports, s.Passed, s.Failed)
	fmt.Fprintf(w, "authors:   %d\n", s.Authors)
	if s.Batches > 0 {
		fmt.Fprintf(w, "oldest:    %s\n", time.Unix(s.OldestBatch, 0).Format("2006-01-02 15:04"))
		fmt.Fprintf(w, "newest:    %s\n", time.Unix(s.NewestBatch, 0).Format("2006-01-02 15:04"))
	}
	if len(s.ByPlatform) > 0 {
		fmt.Fprintln(w, "platforms:")
		// Fixed order first, then anything else the store holds.
		seen := make(map[string]bool)
		for _, p := range append(platform.Known(), platform.Unknown) {
			if n, ok := s.ByPlatform[p.String()]; ok {
				fmt.Fprintf(w, "  %-10s %d\n", p, n)
				seen[p.String()] = true
			}
		}
		var rest []string
		for p := range s.ByPlatform {
			if !seen[p] {
				rest = append(rest, p)
			}
		}
		sort.Strings(rest)
		for _, p := range rest {
			fmt.Fprintf(w, "  %-10s %d\n", p, s.ByPlatform[p])
		}
	}
	return nil
}

// Platforms prints the length rules of every known platform followed by the
// generic fallback.
func Platforms(w io.Writer) error {
	fmt.Fprintf(w, "%-10s  %5s  %5s  %s\n", "PLATFORM", "MIN", "MAX", "OPTIMAL")
	for _, p := range append(platform.Known(), platform.Unknown) {
		s := platform.SpecFor(p)
		fmt.Fprintf(w, "%-10s  %5d  %5d  %d-%d\n", p, s.MinWords, s.MaxWords, s.OptimalMin, s.OptimalMax)
	}
	return nil
}

// Buckets prints the bucket labels used for p.
func Buckets(w io.Writer, p platform.Platform) error {
	p = platform.Normalise(p)
	fmt.Fprintf(w, "%s: %s\n", p, strings.Join(platform.BucketLabels(p), ", "))
	return nil
}
