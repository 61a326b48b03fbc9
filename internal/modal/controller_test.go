package modal

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/evanschultz/tack/internal/app"
	"github.com/evanschultz/tack/internal/domain"
)

// memStore records saved boards in memory.
type memStore struct {
	saved   []domain.Board
	saveErr error
}

func (s *memStore) Load(context.Context, string) (domain.Board, error) {
	if len(s.saved) == 0 {
		return domain.Board{}, errors.New("not found")
	}
	return s.saved[len(s.saved)-1], nil
}

func (s *memStore) Save(_ context.Context, _ string, board domain.Board) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, board.Clone())
	return nil
}

func (s *memStore) Create(ctx context.Context, path string, board domain.Board) error {
	return s.Save(ctx, path, board)
}

// recordingLogger captures logged messages.
type recordingLogger struct {
	errors []string
	debugs []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.debugs = append(l.debugs, msg) }
func (l *recordingLogger) Info(string, ...any)        {}
func (l *recordingLogger) Warn(string, ...any)        {}
func (l *recordingLogger) Error(msg string, _ ...any) { l.errors = append(l.errors, msg) }

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func keyCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func shift(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: tea.ModShift}
}

// newController builds a controller over a board with the given columns.
func newController(t *testing.T, store *memStore, columns ...domain.Column) *Controller {
	t.Helper()
	board := domain.NewBoard("demo")
	board.Columns = columns
	return New(app.NewBoard(board, store, "board.json"), WithClipboard(func(string) error { return nil }))
}

func sendKeys(c *Controller, keys ...tea.KeyPressMsg) {
	for _, k := range keys {
		c.HandleKey(context.Background(), k)
	}
}

func typeText(c *Controller, s string) {
	for _, r := range s {
		c.HandleKey(context.Background(), keyRune(r))
	}
}

func column(title string, rows ...string) domain.Column {
	col := domain.NewColumn(title)
	for _, r := range rows {
		col.Rows = append(col.Rows, domain.NewRow(r, ""))
	}
	return col
}

func rowTitles(col domain.Column) []string {
	out := make([]string, 0, len(col.Rows))
	for _, r := range col.Rows {
		out = append(out, r.Title)
	}
	return out
}

// TestEmptyBoardStartsInCreateColumn verifies the first-column flow.
func TestEmptyBoardStartsInCreateColumn(t *testing.T) {
	store := &memStore{}
	c := newController(t, store)
	if _, ok := c.Mode().(CreateColumn); !ok {
		t.Fatalf("expected CreateColumn mode, got %T", c.Mode())
	}
	typeText(c, "Backlog")
	sendKeys(c, keyCode(tea.KeyEnter))

	if _, ok := c.Mode().(Normal); !ok {
		t.Fatalf("expected Normal mode after submit, got %T", c.Mode())
	}
	cols := c.Board().Columns()
	if len(cols) != 1 || cols[0].Title != "Backlog" || cols[0].Len() != 0 {
		t.Fatalf("unexpected columns %#v", cols)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(store.saved))
	}
}

// TestEscapeWithoutColumnsReopensCreateColumn verifies navigation stays blocked with no columns.
func TestEscapeWithoutColumnsReopensCreateColumn(t *testing.T) {
	c := newController(t, &memStore{})
	typeText(c, "abc")
	sendKeys(c, keyCode(tea.KeyEscape))
	m, ok := c.Mode().(CreateColumn)
	if !ok {
		t.Fatalf("expected CreateColumn mode, got %T", c.Mode())
	}
	if got := m.Popup.Value(); got != "" {
		t.Fatalf("expected a fresh popup, got %q", got)
	}
}

// TestQuitKeys verifies the global quit rule per mode.
func TestQuitKeys(t *testing.T) {
	c := newController(t, &memStore{}, column("To Do"))
	sendKeys(c, keyRune('q'))
	if !c.Quit() {
		t.Fatal("expected q to quit in Normal mode")
	}

	c = newController(t, &memStore{}, column("To Do"))
	sendKeys(c, keyRune('c'))
	typeText(c, "quiet")
	if c.Quit() {
		t.Fatal("expected q to be text inside a popup")
	}
	m, ok := c.Mode().(CreateRow)
	if !ok {
		t.Fatalf("expected CreateRow mode, got %T", c.Mode())
	}
	if title, _ := m.Popup.Values(); title != "quiet" {
		t.Fatalf("expected typed title, got %q", title)
	}
	sendKeys(c, ctrl('c'))
	if !c.Quit() {
		t.Fatal("expected ctrl+c to quit inside a popup")
	}
	sendKeys(c, keyCode(tea.KeyEscape))
	if _, ok := c.Mode().(CreateRow); !ok {
		t.Fatal("expected no processing after quit")
	}
}

// TestCreateRowSubmit verifies CreateRow commits both fields.
func TestCreateRowSubmit(t *testing.T) {
	store := &memStore{}
	c := newController(t, store, column("To Do"))
	sendKeys(c, keyRune('c'))
	typeText(c, "Write")
	sendKeys(c, keyCode(tea.KeyEnter))
	typeText(c, "docs")
	sendKeys(c, ctrl('d'))

	if _, ok := c.Mode().(Normal); !ok {
		t.Fatalf("expected Normal mode, got %T", c.Mode())
	}
	row, ok := c.Board().SelectedRow()
	if !ok || row.Title != "Write" || row.Description != "docs" {
		t.Fatalf("unexpected selected row %#v ok=%t", row, ok)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(store.saved))
	}
}

// TestCreateRowEscapeDiscards verifies Esc leaves the board untouched.
func TestCreateRowEscapeDiscards(t *testing.T) {
	store := &memStore{}
	c := newController(t, store, column("To Do"))
	sendKeys(c, keyRune('c'))
	typeText(c, "draft")
	sendKeys(c, keyCode(tea.KeyEscape))
	if _, ok := c.Mode().(Normal); !ok {
		t.Fatalf("expected Normal mode, got %T", c.Mode())
	}
	if c.Board().Columns()[0].Len() != 0 || len(store.saved) != 0 {
		t.Fatal("expected discard without persistence")
	}
}

// TestEditRowPrefill verifies EditRow starts from the selected row and updates in place.
func TestEditRowPrefill(t *testing.T) {
	store := &memStore{}
	c := newController(t, store, column("To Do", "a", "b"))
	sendKeys(c, keyCode(tea.KeyEnter))
	m, ok := c.Mode().(EditRow)
	if !ok {
		t.Fatalf("expected EditRow mode, got %T", c.Mode())
	}
	if title, _ := m.Popup.Values(); title != "a" {
		t.Fatalf("expected prefilled title a, got %q", title)
	}
	typeText(c, "2")
	sendKeys(c, ctrl('d'))
	if got := rowTitles(c.Board().Columns()[0]); strings.Join(got, ",") != "a2,b" {
		t.Fatalf("unexpected rows %#v", got)
	}
}

// TestEditRowRequiresSelection verifies edit and delete keys need a row.
func TestEditRowRequiresSelection(t *testing.T) {
	c := newController(t, &memStore{}, column("To Do"))
	sendKeys(c, keyRune('e'), keyRune('d'), keyCode(tea.KeyBackspace))
	if _, ok := c.Mode().(Normal); !ok {
		t.Fatalf("expected Normal mode, got %T", c.Mode())
	}
}

// TestDeleteRowDialog verifies confirm and cancel paths of DeleteRow.
func TestDeleteRowDialog(t *testing.T) {
	store := &memStore{}
	c := newController(t, store, column("To Do", "a", "b"))

	sendKeys(c, keyRune('d'))
	m, ok := c.Mode().(DeleteRow)
	if !ok {
		t.Fatalf("expected DeleteRow mode, got %T", c.Mode())
	}
	if m.Dialog.Message != "Delete row 'a'?" {
		t.Fatalf("unexpected dialog message %q", m.Dialog.Message)
	}
	sendKeys(c, keyCode(tea.KeyTab), keyCode(tea.KeyEnter))
	if _, ok := c.Mode().(Normal); !ok {
		t.Fatalf("expected Normal mode, got %T", c.Mode())
	}
	if c.Board().Columns()[0].Len() != 2 || len(store.saved) != 0 {
		t.Fatal("expected cancel focus to keep the row")
	}

	sendKeys(c, keyRune('d'), keyCode(tea.KeyEscape))
	if c.Board().Columns()[0].Len() != 2 {
		t.Fatal("expected esc to keep the row")
	}

	sendKeys(c, keyCode(tea.KeyBackspace), keyCode(tea.KeyEnter))
	if got := rowTitles(c.Board().Columns()[0]); len(got) != 1 || got[0] != "b" {
		t.Fatalf("unexpected rows after delete %#v", got)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(store.saved))
	}
}

// TestColumnEditing verifies EditColumn and CreateColumn from Normal.
func TestColumnEditing(t *testing.T) {
	c := newController(t, &memStore{}, column("To Do"))
	sendKeys(c, keyRune('E'))
	m, ok := c.Mode().(EditColumn)
	if !ok {
		t.Fatalf("expected EditColumn mode, got %T", c.Mode())
	}
	if m.Popup.Value() != "To Do" {
		t.Fatalf("expected prefilled column title, got %q", m.Popup.Value())
	}
	typeText(c, "!")
	sendKeys(c, keyCode(tea.KeyEnter))

	sendKeys(c, keyRune('C'))
	typeText(c, "Done")
	sendKeys(c, keyCode(tea.KeyEnter))

	cols := c.Board().Columns()
	if len(cols) != 2 || cols[0].Title != "To Do!" || cols[1].Title != "Done" {
		t.Fatalf("unexpected columns %#v", cols)
	}
}

// TestDeleteLastColumnForcesCreateColumn verifies the empty-board rule after deletion.
func TestDeleteLastColumnForcesCreateColumn(t *testing.T) {
	c := newController(t, &memStore{}, column("To Do", "a", "b"))
	sendKeys(c, keyRune('D'))
	m, ok := c.Mode().(DeleteColumn)
	if !ok {
		t.Fatalf("expected DeleteColumn mode, got %T", c.Mode())
	}
	if m.Dialog.Message != "Delete column 'To Do' and its 2 rows?" {
		t.Fatalf("unexpected dialog message %q", m.Dialog.Message)
	}
	sendKeys(c, keyCode(tea.KeyEnter))
	if _, ok := c.Mode().(CreateColumn); !ok {
		t.Fatalf("expected CreateColumn mode, got %T", c.Mode())
	}
	if c.Board().HasColumns() {
		t.Fatal("expected no columns")
	}
}

// TestMoveItemRight verifies the move-right scenario through key input.
func TestMoveItemRight(t *testing.T) {
	store := &memStore{}
	c := newController(t, store, column("To Do", "A"), column("Done"))
	sendKeys(c, shift(tea.KeyRight))

	cols := c.Board().Columns()
	if cols[0].Len() != 0 || len(rowTitles(cols[1])) != 1 || cols[1].Rows[0].Title != "A" {
		t.Fatalf("unexpected columns %#v", cols)
	}
	if idx, _ := c.Board().SelectedColumnIndex(); idx != 1 {
		t.Fatalf("expected Done selected, got %d", idx)
	}
	if row, ok := c.Board().SelectedRowIndex(1); !ok || row != 0 {
		t.Fatalf("expected Done row 0 selected, got %d ok=%t", row, ok)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(store.saved))
	}
}

// TestNavigationKeys verifies plain navigation does not persist.
func TestNavigationKeys(t *testing.T) {
	store := &memStore{}
	c := newController(t, store, column("To Do", "a", "b"), column("Done"))
	sendKeys(c, keyRune('j'))
	if row, _ := c.Board().SelectedRowIndex(0); row != 1 {
		t.Fatalf("expected row 1, got %d", row)
	}
	sendKeys(c, keyCode(tea.KeyDown))
	if row, _ := c.Board().SelectedRowIndex(0); row != 0 {
		t.Fatalf("expected wrap to row 0, got %d", row)
	}
	sendKeys(c, keyRune('l'))
	if idx, _ := c.Board().SelectedColumnIndex(); idx != 1 {
		t.Fatalf("expected column 1, got %d", idx)
	}
	sendKeys(c, keyRune('x'))
	if len(store.saved) != 0 {
		t.Fatalf("expected no saves, got %d", len(store.saved))
	}
}

// TestSaveFailureSurfacesStatus verifies failed saves reach the status line and log.
func TestSaveFailureSurfacesStatus(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	logger := &recordingLogger{}
	board := domain.NewBoard("demo")
	board.Columns = []domain.Column{column("To Do")}
	c := New(app.NewBoard(board, store, "board.json"), WithLogger(logger))

	sendKeys(c, keyRune('c'))
	typeText(c, "kept")
	sendKeys(c, ctrl('d'))

	if !strings.Contains(c.Status(), "disk full") {
		t.Fatalf("expected status to carry save error, got %q", c.Status())
	}
	if len(logger.errors) != 1 {
		t.Fatalf("expected one logged error, got %d", len(logger.errors))
	}
	if row, ok := c.Board().SelectedRow(); !ok || row.Title != "kept" {
		t.Fatalf("expected in-memory row kept, got %#v ok=%t", row, ok)
	}

	store.saveErr = nil
	sendKeys(c, keyRune('c'))
	typeText(c, "next")
	sendKeys(c, ctrl('d'))
	if c.Status() != "" {
		t.Fatalf("expected status cleared after successful save, got %q", c.Status())
	}
}

// TestYank verifies the clipboard payload and failure status.
func TestYank(t *testing.T) {
	var copied string
	board := domain.NewBoard("demo")
	board.Columns = []domain.Column{{Title: "To Do", Rows: []domain.Row{domain.NewRow("a", "body")}}}
	c := New(app.NewBoard(board, &memStore{}, "board.json"), WithClipboard(func(s string) error {
		copied = s
		return nil
	}))
	sendKeys(c, keyRune('y'))
	if copied != "a\n\nbody" {
		t.Fatalf("unexpected clipboard payload %q", copied)
	}

	c = New(app.NewBoard(board, &memStore{}, "board.json"), WithClipboard(func(string) error {
		return errors.New("no clipboard")
	}))
	sendKeys(c, keyRune('y'))
	if !strings.Contains(c.Status(), "no clipboard") {
		t.Fatalf("expected clipboard failure in status, got %q", c.Status())
	}
}

// TestKeyConfigOverrides verifies remapped bindings drive dispatch.
func TestKeyConfigOverrides(t *testing.T) {
	board := domain.NewBoard("demo")
	board.Columns = []domain.Column{column("To Do")}
	c := New(app.NewBoard(board, &memStore{}, "board.json"), WithKeyConfig(KeyConfig{CreateRow: "n"}))
	sendKeys(c, keyRune('c'))
	if _, ok := c.Mode().(Normal); !ok {
		t.Fatalf("expected old key unbound, got %T", c.Mode())
	}
	sendKeys(c, keyRune('n'))
	if _, ok := c.Mode().(CreateRow); !ok {
		t.Fatalf("expected CreateRow via override, got %T", c.Mode())
	}
}

// TestModeLabels verifies status bar captions.
func TestModeLabels(t *testing.T) {
	cases := map[string]Mode{
		"NORMAL":        Normal{},
		"CREATE ROW":    CreateRow{},
		"EDIT ROW":      EditRow{},
		"DELETE ROW":    DeleteRow{},
		"CREATE COLUMN": CreateColumn{},
		"EDIT COLUMN":   EditColumn{},
		"DELETE COLUMN": DeleteColumn{},
	}
	for want, m := range cases {
		if got := m.Label(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}
