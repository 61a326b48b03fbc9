package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestColumnInsertRowShiftsRight(t *testing.T) {
	c := NewColumn("To Do")
	c.Rows = []Row{NewRow("a", ""), NewRow("c", "")}
	if err := c.InsertRow(1, NewRow("b", "")); err != nil {
		t.Fatalf("InsertRow() error = %v", err)
	}
	got := []string{c.Rows[0].Title, c.Rows[1].Title, c.Rows[2].Title}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected rows %#v", got)
		}
	}
	if err := c.InsertRow(c.Len(), NewRow("d", "")); err != nil {
		t.Fatalf("InsertRow(append) error = %v", err)
	}
	if c.Rows[3].Title != "d" {
		t.Fatalf("expected appended row, got %q", c.Rows[3].Title)
	}
}

func TestColumnRowBounds(t *testing.T) {
	c := NewColumn("x")
	if err := c.InsertRow(1, Row{}); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
	if _, err := c.RemoveRow(0); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
	if err := c.SetRow(-1, Row{}); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
}

func TestColumnRemoveRow(t *testing.T) {
	c := NewColumn("x")
	c.Rows = []Row{NewRow("a", "1"), NewRow("b", "2"), NewRow("c", "3")}
	row, err := c.RemoveRow(1)
	if err != nil {
		t.Fatalf("RemoveRow() error = %v", err)
	}
	if row != NewRow("b", "2") {
		t.Fatalf("unexpected removed row %#v", row)
	}
	if c.Len() != 2 || c.Rows[0].Title != "a" || c.Rows[1].Title != "c" {
		t.Fatalf("unexpected remaining rows %#v", c.Rows)
	}
}

func TestBoardColumns(t *testing.T) {
	b := NewBoard("demo")
	if _, err := b.Column(0); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	b.AppendColumn(Column{Title: "To Do"})
	idx := b.AppendColumn(NewColumn("Done"))
	if idx != 1 {
		t.Fatalf("unexpected column index %d", idx)
	}
	if b.Columns[0].Rows == nil {
		t.Fatal("expected appended column rows to be non-nil")
	}
	removed, err := b.RemoveColumn(0)
	if err != nil {
		t.Fatalf("RemoveColumn() error = %v", err)
	}
	if removed.Title != "To Do" || len(b.Columns) != 1 {
		t.Fatalf("unexpected board after remove %#v", b)
	}
}

func TestBoardCloneIsDeep(t *testing.T) {
	b := NewBoard("demo")
	b.AppendColumn(NewColumn("To Do"))
	b.Columns[0].Rows = append(b.Columns[0].Rows, NewRow("a", ""))
	clone := b.Clone()
	clone.Columns[0].Rows[0].Title = "changed"
	if b.Columns[0].Rows[0].Title != "a" {
		t.Fatal("expected clone mutation to leave original untouched")
	}
	if clone.RowCount() != 1 {
		t.Fatalf("unexpected clone row count %d", clone.RowCount())
	}
}

func TestBoardJSONShape(t *testing.T) {
	b := Board{Title: "demo", Columns: []Column{{Title: "To Do"}}}
	b.Normalize()
	encoded, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"title":"demo","columns":[{"title":"To Do","rows":[]}]}`
	if string(encoded) != want {
		t.Fatalf("unexpected json %s", encoded)
	}
}
