package popup

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// ColumnField identifies one column popup field.
type ColumnField int

// ColumnFieldTitle is the only column popup field.
const ColumnFieldTitle ColumnField = iota

// columnFieldCount is the number of focusable column popup fields.
const columnFieldCount = 1

// Label returns the field caption.
func (f ColumnField) Label() string {
	return "Title"
}

// Placeholder returns the hint shown for an empty field.
func (f ColumnField) Placeholder() string {
	return "Enter title..."
}

// ColumnPopup stages a column title.
type ColumnPopup struct {
	Title   textarea.Model
	Focused ColumnField
}

// NewColumnPopup constructs a column popup pre-filled with title.
func NewColumnPopup(title string) *ColumnPopup {
	p := &ColumnPopup{Title: newBuffer(ColumnFieldTitle.Placeholder(), title, 1)}
	p.Title.Focus()
	return p
}

// HandleKey applies one key to the title buffer.
func (p *ColumnPopup) HandleKey(msg tea.KeyPressMsg) tea.Cmd {
	if isKey(msg, "tab") {
		p.Focused = (p.Focused + 1) % columnFieldCount
		return nil
	}
	var cmd tea.Cmd
	p.Title, cmd = p.Title.Update(msg)
	return cmd
}

// Value returns the staged title flattened to one line.
func (p *ColumnPopup) Value() string {
	return flatten(p.Title.Value())
}

// SetWidth resizes the title buffer.
func (p *ColumnPopup) SetWidth(width int) {
	p.Title.SetWidth(width)
}
