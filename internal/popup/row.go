package popup

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"github.com/evanschultz/tack/internal/domain"
)

// RowField identifies one row popup field.
type RowField int

// RowFieldTitle and related constants list row popup fields in focus order.
const (
	RowFieldTitle RowField = iota
	RowFieldDescription
)

// Label returns the field caption.
func (f RowField) Label() string {
	if f == RowFieldDescription {
		return "Description"
	}
	return "Title"
}

// Placeholder returns the hint shown for an empty field.
func (f RowField) Placeholder() string {
	if f == RowFieldDescription {
		return "Description\nPress CTRL-D to Submit"
	}
	return "Title"
}

// RowPopup stages a row title and description.
type RowPopup struct {
	Title       textarea.Model
	Description textarea.Model
	Focused     RowField
}

// NewRowPopup constructs an empty row popup focused on the title.
func NewRowPopup() *RowPopup {
	return NewRowPopupFrom(domain.Row{})
}

// NewRowPopupFrom constructs a row popup pre-filled from row.
func NewRowPopupFrom(row domain.Row) *RowPopup {
	p := &RowPopup{
		Title:       newBuffer(RowFieldTitle.Placeholder(), row.Title, 1),
		Description: newBuffer(RowFieldDescription.Placeholder(), row.Description, 6),
	}
	p.focus(RowFieldTitle)
	return p
}

// HandleKey applies one key to the popup. Tab cycles focus; Enter on the title moves to the description.
func (p *RowPopup) HandleKey(msg tea.KeyPressMsg) tea.Cmd {
	if isKey(msg, "tab") {
		return p.focus((p.Focused + 1) % 2)
	}
	if p.Focused == RowFieldTitle && isKey(msg, "enter") {
		return p.focus(RowFieldDescription)
	}
	var cmd tea.Cmd
	switch p.Focused {
	case RowFieldDescription:
		p.Description, cmd = p.Description.Update(msg)
	default:
		p.Title, cmd = p.Title.Update(msg)
	}
	return cmd
}

// Values returns the staged title, flattened to one line, and the description.
func (p *RowPopup) Values() (string, string) {
	return flatten(p.Title.Value()), p.Description.Value()
}

// SetWidth resizes both buffers.
func (p *RowPopup) SetWidth(width int) {
	p.Title.SetWidth(width)
	p.Description.SetWidth(width)
}

// focus moves input focus to field.
func (p *RowPopup) focus(field RowField) tea.Cmd {
	p.Focused = field
	if field == RowFieldDescription {
		p.Title.Blur()
		return p.Description.Focus()
	}
	p.Description.Blur()
	return p.Title.Focus()
}
