// render.go renders markdown for the terminal.
//
// Terminal output gets glamour rendering for readability; pipe/redirect gets
// raw markdown so reports can be saved or fed to another tool.

package format

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Render writes md to w, styled with glamour when w is a terminal and raw
// is false. A rendering failure falls back to the raw markdown.
func Render(w io.Writer, md string, raw bool) error {
	if !raw && IsTerminal(w) {
		rendered, err := glamour.Render(md, "dark")
		if err == nil {
			_, err = fmt.Fprint(w, rendered)
			return err
		}
	}
	_, err := fmt.Fprint(w, md)
	return err
}
