package app

import (
	"context"
	"fmt"

	"github.com/evanschultz/tack/internal/domain"
)

// SelectColumn selects one column and its first row, clearing every other column's row.
func (b *Board) SelectColumn(index int) error {
	if !b.HasColumns() {
		return nil
	}
	if index < 0 || index >= len(b.doc.Columns) {
		return domain.ErrInvalidColumn
	}
	b.selectColumn(index)
	return nil
}

// selectColumn applies a column selection without bounds validation beyond emptiness.
func (b *Board) selectColumn(index int) {
	if !b.HasColumns() {
		b.view.SelectedColumn = 0
		return
	}
	b.view.SelectedColumn = index
	b.view.clearRows()
	b.view.setRow(index, 0, len(b.doc.Columns[index].Rows) > 0)
}

// MoveCursor moves the cursor one step with wrap-around. With moveItem the selected row travels instead.
func (b *Board) MoveCursor(ctx context.Context, dir Direction, moveItem bool) error {
	if !b.HasColumns() {
		return nil
	}
	current := b.view.SelectedColumn
	switch dir {
	case DirectionLeft, DirectionRight:
		delta := 1
		if dir == DirectionLeft {
			delta = -1
		}
		next := wrapIndex(current, delta, len(b.doc.Columns))
		if !moveItem {
			b.selectColumn(next)
			return nil
		}
		row, ok := b.view.SelectedRow(current)
		if !ok {
			return nil
		}
		return b.MoveRow(ctx, Position{Column: current, Row: row}, Position{Column: next, Row: len(b.doc.Columns[next].Rows)})

	case DirectionUp, DirectionDown:
		rows := len(b.doc.Columns[current].Rows)
		if rows == 0 {
			return nil
		}
		delta := 1
		if dir == DirectionUp {
			delta = -1
		}
		origin, ok := b.view.SelectedRow(current)
		dest := 0
		if ok {
			dest = wrapIndex(origin, delta, rows)
		}
		if !moveItem {
			b.view.setRow(current, dest, true)
			return nil
		}
		return b.MoveRow(ctx, Position{Column: current, Row: origin}, Position{Column: current, Row: dest})

	default:
		return fmt.Errorf("unknown direction %d", dir)
	}
}

// MoveRow removes the row at origin and inserts it at destination, then selects it there.
// A destination row past the end of its column appends.
func (b *Board) MoveRow(ctx context.Context, origin, destination Position) error {
	src, err := b.doc.Column(origin.Column)
	if err != nil {
		return err
	}
	dst, err := b.doc.Column(destination.Column)
	if err != nil {
		return err
	}
	if destination.Row < 0 {
		return domain.ErrInvalidPosition
	}
	row, err := src.RemoveRow(origin.Row)
	if err != nil {
		return err
	}
	at := min(destination.Row, dst.Len())
	if err := dst.InsertRow(at, row); err != nil {
		return err
	}

	b.view.SelectedColumn = destination.Column
	b.view.clearRows()
	b.view.setRow(destination.Column, at, dst.Len() > 0)
	return b.save(ctx)
}

// InsertRow appends a row to the selected column.
func (b *Board) InsertRow(ctx context.Context, title, description string) error {
	col, ok := b.SelectedColumnIndex()
	if !ok {
		return nil
	}
	column := &b.doc.Columns[col]
	column.Rows = append(column.Rows, domain.NewRow(title, description))
	if _, selected := b.view.SelectedRow(col); !selected {
		b.view.setRow(col, 0, true)
	}
	return b.save(ctx)
}

// UpdateRow overwrites the selected row in place.
func (b *Board) UpdateRow(ctx context.Context, title, description string) error {
	col, ok := b.SelectedColumnIndex()
	if !ok {
		return nil
	}
	row, ok := b.view.SelectedRow(col)
	if !ok {
		return nil
	}
	if err := b.doc.Columns[col].SetRow(row, domain.NewRow(title, description)); err != nil {
		return err
	}
	return b.save(ctx)
}

// DeleteRow removes the selected row and selects the one above it.
func (b *Board) DeleteRow(ctx context.Context) error {
	col, ok := b.SelectedColumnIndex()
	if !ok {
		return nil
	}
	row, ok := b.view.SelectedRow(col)
	if !ok {
		return nil
	}
	column := &b.doc.Columns[col]
	if _, err := column.RemoveRow(row); err != nil {
		return err
	}
	switch {
	case column.Len() == 0:
		b.view.setRow(col, 0, false)
	case row == 0:
		b.view.setRow(col, 0, true)
	default:
		b.view.setRow(col, row-1, true)
	}
	return b.save(ctx)
}

// CreateColumn appends an empty column.
func (b *Board) CreateColumn(ctx context.Context, title string) error {
	b.doc.AppendColumn(domain.NewColumn(title))
	b.view.selectedRows = append(b.view.selectedRows, noRow)
	return b.save(ctx)
}

// UpdateColumn renames the selected column.
func (b *Board) UpdateColumn(ctx context.Context, title string) error {
	col, ok := b.SelectedColumnIndex()
	if !ok {
		return nil
	}
	b.doc.Columns[col].Rename(title)
	return b.save(ctx)
}

// DeleteColumn removes the selected column and selects the first remaining one.
func (b *Board) DeleteColumn(ctx context.Context) error {
	col, ok := b.SelectedColumnIndex()
	if !ok {
		return nil
	}
	if _, err := b.doc.RemoveColumn(col); err != nil {
		return err
	}
	b.view.resize(len(b.doc.Columns))
	b.selectColumn(0)
	return b.save(ctx)
}

// wrapIndex wraps an index by delta for a bounded collection.
func wrapIndex(current int, delta int, total int) int {
	if total <= 0 {
		return 0
	}
	next := current + delta
	for next < 0 {
		next += total
	}
	for next >= total {
		next -= total
	}
	return next
}
