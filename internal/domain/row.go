package domain

// Row represents one task card. Rows have no identity beyond their position.
type Row struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewRow constructs a row from a title and description.
func NewRow(title, description string) Row {
	return Row{Title: title, Description: description}
}
