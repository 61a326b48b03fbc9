package modal

import "github.com/evanschultz/tack/internal/popup"

// Mode is the active controller state. The set of implementations is closed.
type Mode interface {
	// Label returns the status bar caption for the mode.
	Label() string
	mode()
}

// Normal routes keys to board navigation.
type Normal struct{}

// CreateRow stages a new row.
type CreateRow struct{ Popup *popup.RowPopup }

// EditRow stages changes to the selected row.
type EditRow struct{ Popup *popup.RowPopup }

// DeleteRow confirms removal of the selected row.
type DeleteRow struct{ Dialog *popup.Dialog }

// CreateColumn stages a new column.
type CreateColumn struct{ Popup *popup.ColumnPopup }

// EditColumn stages a rename of the selected column.
type EditColumn struct{ Popup *popup.ColumnPopup }

// DeleteColumn confirms removal of the selected column.
type DeleteColumn struct{ Dialog *popup.Dialog }

func (Normal) Label() string       { return "NORMAL" }
func (CreateRow) Label() string    { return "CREATE ROW" }
func (EditRow) Label() string      { return "EDIT ROW" }
func (DeleteRow) Label() string    { return "DELETE ROW" }
func (CreateColumn) Label() string { return "CREATE COLUMN" }
func (EditColumn) Label() string   { return "EDIT COLUMN" }
func (DeleteColumn) Label() string { return "DELETE COLUMN" }

func (Normal) mode()       {}
func (CreateRow) mode()    {}
func (EditRow) mode()      {}
func (DeleteRow) mode()    {}
func (CreateColumn) mode() {}
func (EditColumn) mode()   {}
func (DeleteColumn) mode() {}

// isTextEntry reports whether m captures printable input.
func isTextEntry(m Mode) bool {
	switch m.(type) {
	case CreateRow, EditRow, CreateColumn, EditColumn:
		return true
	default:
		return false
	}
}
