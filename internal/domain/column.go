package domain

// Column represents one ordered list of rows.
type Column struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// NewColumn constructs an empty column.
func NewColumn(title string) Column {
	return Column{Title: title, Rows: []Row{}}
}

// Len returns the number of rows.
func (c Column) Len() int {
	return len(c.Rows)
}

// Rename replaces the column title.
func (c *Column) Rename(title string) {
	c.Title = title
}

// InsertRow inserts row at index, shifting rows at or after index to the right.
// index == Len() appends.
func (c *Column) InsertRow(index int, row Row) error {
	if index < 0 || index > len(c.Rows) {
		return ErrInvalidPosition
	}
	c.Rows = append(c.Rows, Row{})
	copy(c.Rows[index+1:], c.Rows[index:])
	c.Rows[index] = row
	return nil
}

// RemoveRow removes and returns the row at index.
func (c *Column) RemoveRow(index int) (Row, error) {
	if index < 0 || index >= len(c.Rows) {
		return Row{}, ErrInvalidPosition
	}
	row := c.Rows[index]
	c.Rows = append(c.Rows[:index], c.Rows[index+1:]...)
	return row, nil
}

// SetRow overwrites the row at index in place.
func (c *Column) SetRow(index int, row Row) error {
	if index < 0 || index >= len(c.Rows) {
		return ErrInvalidPosition
	}
	c.Rows[index] = row
	return nil
}
