// Package markdown renders advisor replies for the terminal.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const defaultWidth = 80

// Renderer turns Markdown into styled terminal text at a fixed wrap width.
// It is not safe for concurrent use.
type Renderer struct {
	style string
	width int
	term  *glamour.TermRenderer
}

// New creates a Renderer using the named glamour style ("dark", "light",
// "notty", ...). An empty style means "dark".
func New(style string, width int) *Renderer {
	if style == "" {
		style = "dark"
	}
	r := &Renderer{style: style}
	r.SetWidth(width)
	return r
}

// Width returns the current wrap width.
func (r *Renderer) Width() int { return r.width }

// SetWidth changes the wrap width, rebuilding the glamour renderer only when
// the width actually changes.
func (r *Renderer) SetWidth(width int) {
	if width <= 0 {
		width = defaultWidth
	}
	if width == r.width && r.term != nil {
		return
	}
	r.width = width
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r.term = nil
		return
	}
	r.term = term
}

// Render formats md. On any rendering failure the input is returned as is.
func (r *Renderer) Render(md string) string {
	if r.term == nil {
		return md
	}
	out, err := r.term.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
