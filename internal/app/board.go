package app

import (
	"context"
	"fmt"

	"github.com/evanschultz/tack/internal/domain"
)

// Direction identifies one cursor movement.
type Direction int

// DirectionUp and related constants define cursor movements.
const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// String returns the direction label.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "unknown"
	}
}

// Position addresses one row slot on the board.
type Position struct {
	Column int
	Row    int
}

// Board owns one document, its cursor state, and the store it is saved to.
// Every mutation saves the whole document before returning.
type Board struct {
	doc   domain.Board
	view  ViewState
	store Store
	path  string
}

// NewBoard wraps a document loaded from path. Cursor state is reset to the first column.
func NewBoard(doc domain.Board, store Store, path string) *Board {
	doc.Normalize()
	b := &Board{doc: doc, store: store, path: path}
	b.view.resize(len(doc.Columns))
	b.selectColumn(0)
	return b
}

// Open loads the board stored at path.
func Open(ctx context.Context, store Store, path string) (*Board, error) {
	doc, err := store.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewBoard(doc, store, path), nil
}

// Create writes a new empty board at path. Existing boards are never overwritten.
func Create(ctx context.Context, store Store, path, title string) (*Board, error) {
	doc := domain.NewBoard(title)
	if err := store.Create(ctx, path, doc); err != nil {
		return nil, err
	}
	return NewBoard(doc, store, path), nil
}

// Path returns the backing location.
func (b *Board) Path() string {
	return b.path
}

// Title returns the board title.
func (b *Board) Title() string {
	return b.doc.Title
}

// Document returns a copy of the persisted document.
func (b *Board) Document() domain.Board {
	return b.doc.Clone()
}

// View returns a copy of the cursor state.
func (b *Board) View() ViewState {
	out := ViewState{SelectedColumn: b.view.SelectedColumn}
	out.selectedRows = append([]int(nil), b.view.selectedRows...)
	return out
}

// Columns returns the board columns. Callers must not mutate the result.
func (b *Board) Columns() []domain.Column {
	return b.doc.Columns
}

// HasColumns reports whether the board has at least one column.
func (b *Board) HasColumns() bool {
	return len(b.doc.Columns) > 0
}

// SelectedColumnIndex returns the selected column index.
func (b *Board) SelectedColumnIndex() (int, bool) {
	if !b.HasColumns() {
		return 0, false
	}
	return b.view.SelectedColumn, true
}

// SelectedColumn returns the selected column.
func (b *Board) SelectedColumn() (domain.Column, bool) {
	idx, ok := b.SelectedColumnIndex()
	if !ok {
		return domain.Column{}, false
	}
	return b.doc.Columns[idx], true
}

// SelectedRowIndex returns the selected row index within column.
func (b *Board) SelectedRowIndex(column int) (int, bool) {
	return b.view.SelectedRow(column)
}

// SelectedRow returns the selected row of the selected column.
func (b *Board) SelectedRow() (domain.Row, bool) {
	col, ok := b.SelectedColumnIndex()
	if !ok {
		return domain.Row{}, false
	}
	row, ok := b.view.SelectedRow(col)
	if !ok {
		return domain.Row{}, false
	}
	return b.doc.Columns[col].Rows[row], true
}

// save writes the whole document to the store.
func (b *Board) save(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	if err := b.store.Save(ctx, b.path, b.doc); err != nil {
		return fmt.Errorf("save board %q: %w", b.path, err)
	}
	return nil
}
