package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evanschultz/tack/internal/app"
	"github.com/evanschultz/tack/internal/domain"
)

func sampleBoard() domain.Board {
	b := domain.NewBoard("Sprint")
	todo := domain.NewColumn("To Do")
	todo.Rows = []domain.Row{domain.NewRow("A", "first\nsecond"), domain.NewRow("B", "")}
	b.AppendColumn(todo)
	b.AppendColumn(domain.NewColumn("Done"))
	return b
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "board.json")
	store := New()
	if err := store.Create(ctx, path, sampleBoard()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	loaded, err := store.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := sampleBoard()
	if loaded.Title != want.Title || len(loaded.Columns) != len(want.Columns) {
		t.Fatalf("unexpected board %#v", loaded)
	}
	for i := range want.Columns {
		if loaded.Columns[i].Title != want.Columns[i].Title {
			t.Fatalf("column %d title mismatch %q", i, loaded.Columns[i].Title)
		}
		if len(loaded.Columns[i].Rows) != len(want.Columns[i].Rows) {
			t.Fatalf("column %d row count mismatch", i)
		}
		for j := range want.Columns[i].Rows {
			if loaded.Columns[i].Rows[j] != want.Columns[i].Rows[j] {
				t.Fatalf("row %d/%d mismatch %#v", i, j, loaded.Columns[i].Rows[j])
			}
		}
	}
}

func TestSaveNeverWritesCursorState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "board.json")
	store := New()
	if err := store.Create(ctx, path, sampleBoard()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	b, err := app.Open(ctx, store, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := b.SelectColumn(1); err != nil {
		t.Fatalf("SelectColumn() error = %v", err)
	}
	if err := b.UpdateColumn(ctx, "Finished"); err != nil {
		t.Fatalf("UpdateColumn() error = %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.Contains(string(content), "selected") {
		t.Fatalf("expected no cursor fields in document:\n%s", content)
	}

	reopened, err := app.Open(ctx, store, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if col, _ := reopened.SelectedColumnIndex(); col != 0 {
		t.Fatalf("expected reopened column 0, got %d", col)
	}
	if reopened.Columns()[1].Title != "Finished" {
		t.Fatalf("unexpected renamed column %q", reopened.Columns()[1].Title)
	}
}

func TestDecodeIgnoresLegacyCursorFields(t *testing.T) {
	content := []byte(`{"title":"t","columns":[{"title":"a","rows":[{"title":"x","description":""}]},{"title":"b"}],"selected_column":1,"selected_row":3}`)
	board, err := Decode(content)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(board.Columns) != 2 || board.Columns[1].Rows == nil {
		t.Fatalf("unexpected decoded board %#v", board)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, content := range []string{"", "   ", "{", `{"columns": 3}`} {
		if _, err := Decode([]byte(content)); !errors.Is(err, app.ErrMalformedDocument) {
			t.Fatalf("Decode(%q) expected ErrMalformedDocument, got %v", content, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, app.ErrFileReadFailed) {
		t.Fatalf("expected ErrFileReadFailed, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestCreateRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	if err := os.WriteFile(path, []byte(`{"title":"keep","columns":[]}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	err := New().Create(context.Background(), path, domain.NewBoard(""))
	if !errors.Is(err, app.ErrFileCreateFailed) || !errors.Is(err, app.ErrFileExists) {
		t.Fatalf("expected ErrFileCreateFailed+ErrFileExists, got %v", err)
	}
	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), "keep") {
		t.Fatalf("existing file overwritten: %s", content)
	}
}

func TestCreateMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.json")
	err := New().Create(context.Background(), path, domain.NewBoard(""))
	if !errors.Is(err, app.ErrDirectoryMissing) {
		t.Fatalf("expected ErrDirectoryMissing, got %v", err)
	}
	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if err := New().Create(context.Background(), path, domain.NewBoard("")); err != nil {
		t.Fatalf("Create() after EnsureDir error = %v", err)
	}
}

func TestSaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone", "board.json")
	err := New().Save(context.Background(), path, domain.NewBoard(""))
	if !errors.Is(err, app.ErrFileWriteFailed) {
		t.Fatalf("expected ErrFileWriteFailed, got %v", err)
	}
}
