// Package popup holds the transient input sub-states shown over the board:
// text-entry popups for rows and columns, and confirm/cancel dialogs.
// None of them touch the board; they only stage input.
package popup

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// defaultWidth is the buffer width used until the caller sets one.
const defaultWidth = 48

// newBuffer constructs one text buffer pre-loaded with value, cursor at the end.
func newBuffer(placeholder, value string, height int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetWidth(defaultWidth)
	ta.SetHeight(height)
	ta.SetValue(value)
	return ta
}

// flatten joins a buffer's lines without separator.
func flatten(value string) string {
	return strings.ReplaceAll(value, "\n", "")
}

// isKey reports whether msg is the named keystroke.
func isKey(msg tea.KeyPressMsg, names ...string) bool {
	got := msg.String()
	for _, name := range names {
		if got == name {
			return true
		}
	}
	return false
}
