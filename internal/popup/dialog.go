package popup

import tea "charm.land/bubbletea/v2"

// DialogField identifies one dialog button.
type DialogField int

// DialogConfirm and related constants list dialog buttons.
const (
	DialogConfirm DialogField = iota
	DialogCancel
)

// Label returns the button caption.
func (f DialogField) Label() string {
	if f == DialogCancel {
		return "Cancel"
	}
	return "Confirm"
}

// Dialog is a binary confirm/cancel prompt.
type Dialog struct {
	Message string
	Focused DialogField
}

// NewDialog constructs a dialog focused on Confirm.
func NewDialog(message string) *Dialog {
	return &Dialog{Message: message, Focused: DialogConfirm}
}

// HandleKey toggles focus on tab, left, and right. Other keys are ignored.
func (d *Dialog) HandleKey(msg tea.KeyPressMsg) {
	if isKey(msg, "tab", "left", "right") {
		d.toggle()
	}
}

// Confirmed reports whether Confirm has focus.
func (d *Dialog) Confirmed() bool {
	return d.Focused == DialogConfirm
}

// toggle switches focus between the two buttons.
func (d *Dialog) toggle() {
	if d.Focused == DialogConfirm {
		d.Focused = DialogCancel
		return
	}
	d.Focused = DialogConfirm
}
