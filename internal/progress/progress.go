// Package progress provides CLI progress indicators for directory imports and
// vacuum. Output goes to stderr to keep stdout clean for piping, and nothing
// is drawn unless stderr is a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the minimum number of items before showing progress.
const minItems = 5

// clearWidth is how many columns Done and Stop blank out.
const clearWidth = 60

// Progress tracks and displays counted progress.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	live    bool
}

// New creates a progress reporter on stderr.
// If total is less than minItems, progress updates are suppressed.
func New(label string, total int) *Progress {
	return NewTo(os.Stderr, label, total)
}

// NewTo creates a progress reporter on w. Updates are drawn only when w is
// a terminal.
func NewTo(w io.Writer, label string, total int) *Progress {
	return &Progress{
		w:     w,
		label: label,
		total: total,
		live:  isTerminal(w) && total >= minItems,
	}
}

// Increment advances the progress counter by one.
func (p *Progress) Increment() {
	p.current++
}

// Current returns the number of completed items.
func (p *Progress) Current() int {
	return p.current
}

// Print redraws the progress line in place.
func (p *Progress) Print() {
	if !p.live {
		return
	}
	pct := (p.current * 100) / p.total
	fmt.Fprintf(p.w, "\r%s... %d/%d (%d%%)", p.label, p.current, p.total, pct)
}

// Done clears the progress line to make way for final output.
func (p *Progress) Done() {
	if p.live {
		clearLine(p.w)
	}
}

// Spinner shows that indeterminate work is in progress.
type Spinner struct {
	w       io.Writer
	label   string
	frame   int
	live    bool
	running bool
}

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner on stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		w:     os.Stderr,
		label: label,
		live:  isTerminal(os.Stderr),
	}
}

// Start displays the spinner.
func (s *Spinner) Start() {
	if !s.live {
		return
	}
	s.running = true
	fmt.Fprintf(s.w, "%s %s...", frames[0], s.label)
}

// Tick advances the spinner animation by one frame.
func (s *Spinner) Tick() {
	if !s.running {
		return
	}
	s.frame = (s.frame + 1) % len(frames)
	fmt.Fprintf(s.w, "\r%s %s...", frames[s.frame], s.label)
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	if !s.running {
		return
	}
	s.running = false
	clearLine(s.w)
}

func clearLine(w io.Writer) {
	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", clearWidth))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
