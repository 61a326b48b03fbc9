package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// minPreviewWrap is the narrowest wrap width handed to glamour.
const minPreviewWrap = 24

// markdownRenderer renders row descriptions and keeps the last result, since View runs on every update.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
	lastIn   string
	lastOut  string
}

// render converts markdown into ANSI-styled text wrapped to width.
func (r *markdownRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}
	wrap := max(width, minPreviewWrap)
	if r.renderer == nil || r.width != wrap {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrap
		r.lastIn, r.lastOut = "", ""
	}
	if markdown == r.lastIn {
		return r.lastOut
	}
	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	r.lastIn = markdown
	r.lastOut = strings.Trim(rendered, "\n")
	return r.lastOut
}
