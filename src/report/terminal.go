package report

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// RenderTerminal renders markdown for display in a terminal of the given width.
func RenderTerminal(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

// WriteMarkdown writes markdown to out, styled through glamour when pretty is set and out is a terminal.
// Piped output always stays raw markdown so it can be pasted into a pull request.
func WriteMarkdown(out *os.File, markdown string, pretty bool) error {
	if pretty && IsTerminal(out) {
		w := 100
		if tw, _, err := term.GetSize(int(out.Fd())); err == nil && tw > 0 {
			w = tw
		}
		if rendered, err := RenderTerminal(markdown, w); err == nil {
			markdown = rendered
		}
	}
	_, err := io.WriteString(out, markdown)
	return err
}
