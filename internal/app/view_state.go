package app

// noRow marks a column without a selected row.
const noRow = -1

// ViewState holds cursor state that is never persisted.
type ViewState struct {
	SelectedColumn int
	selectedRows   []int
}

// SelectedRow reports the selected row index for one column.
func (v ViewState) SelectedRow(column int) (int, bool) {
	if column < 0 || column >= len(v.selectedRows) {
		return 0, false
	}
	idx := v.selectedRows[column]
	if idx == noRow {
		return 0, false
	}
	return idx, true
}

// resize keeps one row slot per column, clearing every slot.
func (v *ViewState) resize(columns int) {
	v.selectedRows = make([]int, columns)
	v.clearRows()
}

// clearRows unselects every column's row.
func (v *ViewState) clearRows() {
	for i := range v.selectedRows {
		v.selectedRows[i] = noRow
	}
}

// setRow selects one row in column, or clears it when ok is false.
func (v *ViewState) setRow(column, row int, ok bool) {
	if column < 0 || column >= len(v.selectedRows) {
		return
	}
	if !ok {
		v.selectedRows[column] = noRow
		return
	}
	v.selectedRows[column] = row
}
