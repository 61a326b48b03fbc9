package domain

// Board is the durable document: a title and ordered columns.
// Cursor state lives outside of it.
type Board struct {
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
}

// NewBoard constructs an empty board.
func NewBoard(title string) Board {
	return Board{Title: title, Columns: []Column{}}
}

// Column returns a pointer to the column at index.
func (b *Board) Column(index int) (*Column, error) {
	if index < 0 || index >= len(b.Columns) {
		return nil, ErrInvalidColumn
	}
	return &b.Columns[index], nil
}

// AppendColumn appends col and returns its index.
func (b *Board) AppendColumn(col Column) int {
	if col.Rows == nil {
		col.Rows = []Row{}
	}
	b.Columns = append(b.Columns, col)
	return len(b.Columns) - 1
}

// RemoveColumn removes and returns the column at index.
func (b *Board) RemoveColumn(index int) (Column, error) {
	if index < 0 || index >= len(b.Columns) {
		return Column{}, ErrInvalidColumn
	}
	col := b.Columns[index]
	b.Columns = append(b.Columns[:index], b.Columns[index+1:]...)
	return col, nil
}

// RowCount returns the number of rows across all columns.
func (b Board) RowCount() int {
	total := 0
	for _, col := range b.Columns {
		total += len(col.Rows)
	}
	return total
}

// Normalize replaces nil slices with empty ones so encoded documents never carry null lists.
func (b *Board) Normalize() {
	if b.Columns == nil {
		b.Columns = []Column{}
	}
	for i := range b.Columns {
		if b.Columns[i].Rows == nil {
			b.Columns[i].Rows = []Row{}
		}
	}
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := Board{Title: b.Title, Columns: make([]Column, len(b.Columns))}
	for i, col := range b.Columns {
		out.Columns[i] = Column{Title: col.Title, Rows: append([]Row{}, col.Rows...)}
	}
	return out
}
