// Package diff computes and formats differences between two length reports,
// so a regenerated batch can be compared against an earlier run.
package diff

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/qgate/internal/store"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Options selects the reports to compare. When Batch is set the two most
// recent reports of that batch are compared and Old/New are ignored.
type Options struct {
	Old   string // Report key of the older side
	New   string // Report key of the newer side
	Batch string // Batch key or name
}

// Differ is the interface for diff operations.
type Differ interface {
	Diff(ctx context.Context, opts Options) (Result, error)
}

// Run executes a diff operation and writes output to w.
func Run(ctx context.Context, w io.Writer, svc Differ, opts Options, colour bool) (Result, error) {
	r, err := svc.Diff(ctx, opts)
	if err != nil {
		return r, err
	}

	fmt.Fprint(w, r.Format(colour))
	return r, nil
}

// Result holds diff output.
type Result struct {
	Old  string `json:"old"`  // old label
	New  string `json:"new"`  // new label
	Diff string `json:"diff"` // plain diff text
}

// Changed reports whether the two sides differ.
func (r Result) Changed() bool {
	for _, line := range strings.Split(r.Diff, "\n") {
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "+ ") {
			return true
		}
	}
	return false
}

// Compute returns a line diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)

	return Result{
		Old:  oldLabel,
		New:  newLabel,
		Diff: format(d),
	}
}

// Reports diffs the line rendering of two reports.
func Reports(older, newer *store.Report) Result {
	return Compute(Text(older), Text(newer), label(older), label(newer))
}

func label(r *store.Report) string {
	return fmt.Sprintf("%s (batch %s)", r.Key, r.BatchKey)
}

// Text renders the comparable parts of a report one fact per line. Keys,
// authors and timestamps are left out so identical outcomes produce no diff.
func Text(r *store.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "passed: %t\n", r.Passed)
	fmt.Fprintf(&b, "platform: %s\n", r.Platform)
	fmt.Fprintf(&b, "posts: %d\n", r.Posts)
	fmt.Fprintf(&b, "optimal: %d\n", r.Optimal)
	fmt.Fprintf(&b, "average length: %.2f\n", r.AverageLength)
	fmt.Fprintf(&b, "optimal ratio: %.2f\n", r.OptimalRatio)
	fmt.Fprintf(&b, "sameness: %.2f\n", r.Sameness)
	if r.Distribution != nil {
		r.Distribution.Each(func(label string, count int) {
			fmt.Fprintf(&b, "bucket %s: %d\n", label, count)
		})
	}
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "issue: %s\n", issue)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}
	fmt.Fprintf(&b, "metric: %s\n", r.Metric)
	return b.String()
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		// Trim trailing newline to avoid artefact empty string from Split
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + lines[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(lines) - contextLines; i < len(lines); i++ {
					b.WriteString("  " + lines[i] + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}

// ParseRange parses "old:new" into two report keys.
func ParseRange(s string) (older, newer string, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid report range %q (expected old:new)", s)
	}
	return parts[0], parts[1], nil
}
