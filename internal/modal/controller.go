// Package modal implements the key-driven state machine that decides whether
// input navigates the board or edits a popup or dialog.
package modal

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/evanschultz/tack/internal/app"
	"github.com/evanschultz/tack/internal/domain"
	"github.com/evanschultz/tack/internal/popup"
)

// Logger receives controller events.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the event logger.
func WithLogger(logger Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithKeyConfig applies key binding overrides.
func WithKeyConfig(cfg KeyConfig) Option {
	return func(c *Controller) {
		c.keys.applyConfig(cfg)
	}
}

// WithClipboard replaces the clipboard writer used by yank.
func WithClipboard(write func(string) error) Option {
	return func(c *Controller) {
		if write != nil {
			c.copy = write
		}
	}
}

// Controller owns the active Mode and applies each key event to it.
type Controller struct {
	board      *app.Board
	mode       Mode
	keys       KeyMap
	logger     Logger
	copy       func(string) error
	quit       bool
	status     string
	popupWidth int
}

// New constructs a controller over board. A board without columns starts in CreateColumn.
func New(board *app.Board, opts ...Option) *Controller {
	c := &Controller{
		board:  board,
		mode:   Normal{},
		keys:   DefaultKeyMap(),
		logger: nopLogger{},
		copy:   clipboard.WriteAll,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if !board.HasColumns() {
		c.mode = CreateColumn{Popup: c.newColumnPopup("")}
	}
	return c
}

// Board returns the board being edited.
func (c *Controller) Board() *app.Board {
	return c.board
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Keys returns the active key map.
func (c *Controller) Keys() KeyMap {
	return c.keys
}

// Quit reports whether a quit key was pressed.
func (c *Controller) Quit() bool {
	return c.quit
}

// Status returns the current status message, empty when there is none.
func (c *Controller) Status() string {
	return c.status
}

// SetPopupWidth sizes the text buffers of current and future popups.
func (c *Controller) SetPopupWidth(width int) {
	if width <= 0 {
		return
	}
	c.popupWidth = width
	switch m := c.mode.(type) {
	case CreateRow:
		m.Popup.SetWidth(width)
	case EditRow:
		m.Popup.SetWidth(width)
	case CreateColumn:
		m.Popup.SetWidth(width)
	case EditColumn:
		m.Popup.SetWidth(width)
	}
}

// HandleKey applies one key event. The returned command comes from the focused text buffer.
func (c *Controller) HandleKey(ctx context.Context, msg tea.KeyPressMsg) tea.Cmd {
	if c.quit {
		return nil
	}
	if c.isQuit(msg) {
		c.quit = true
		c.logger.Debug("quit requested", "mode", c.mode.Label())
		return nil
	}
	switch m := c.mode.(type) {
	case Normal:
		c.handleNormal(ctx, msg)
	case CreateRow:
		return c.handleRowPopup(ctx, msg, m.Popup, false)
	case EditRow:
		return c.handleRowPopup(ctx, msg, m.Popup, true)
	case DeleteRow:
		c.handleDialog(ctx, msg, m.Dialog, false)
	case CreateColumn:
		return c.handleColumnPopup(ctx, msg, m.Popup, false)
	case EditColumn:
		return c.handleColumnPopup(ctx, msg, m.Popup, true)
	case DeleteColumn:
		c.handleDialog(ctx, msg, m.Dialog, true)
	}
	return nil
}

// isQuit applies the global quit rule. Text popups only honor the control-modified quit.
func (c *Controller) isQuit(msg tea.KeyPressMsg) bool {
	if key.Matches(msg, c.keys.ForceQuit) {
		return true
	}
	return !isTextEntry(c.mode) && key.Matches(msg, c.keys.Quit)
}

// handleNormal handles keys while no overlay is active.
func (c *Controller) handleNormal(ctx context.Context, msg tea.KeyPressMsg) {
	switch {
	case key.Matches(msg, c.keys.CreateRow):
		if c.board.HasColumns() {
			c.setMode(CreateRow{Popup: c.newRowPopup(nil)})
		}
	case key.Matches(msg, c.keys.CreateColumn):
		c.setMode(CreateColumn{Popup: c.newColumnPopup("")})
	case key.Matches(msg, c.keys.EditColumn):
		if col, ok := c.board.SelectedColumn(); ok {
			c.setMode(EditColumn{Popup: c.newColumnPopup(col.Title)})
		}
	case key.Matches(msg, c.keys.EditRow):
		if row, ok := c.board.SelectedRow(); ok {
			c.setMode(EditRow{Popup: c.newRowPopup(&row)})
		}
	case key.Matches(msg, c.keys.DeleteRow):
		if row, ok := c.board.SelectedRow(); ok {
			c.setMode(DeleteRow{Dialog: popup.NewDialog(fmt.Sprintf("Delete row '%s'?", row.Title))})
		}
	case key.Matches(msg, c.keys.DeleteColumn):
		if col, ok := c.board.SelectedColumn(); ok {
			message := fmt.Sprintf("Delete column '%s' and its %d rows?", col.Title, col.Len())
			c.setMode(DeleteColumn{Dialog: popup.NewDialog(message)})
		}
	case key.Matches(msg, c.keys.Yank):
		c.yank()
	default:
		dir, moveItem, ok := c.direction(msg)
		if !ok {
			return
		}
		err := c.board.MoveCursor(ctx, dir, moveItem)
		if moveItem || err != nil {
			c.record("move row", err, "direction", dir.String())
		}
	}
}

// direction maps a navigation key to a cursor direction.
func (c *Controller) direction(msg tea.KeyPressMsg) (app.Direction, bool, bool) {
	switch {
	case key.Matches(msg, c.keys.MoveLeft):
		return app.DirectionLeft, true, true
	case key.Matches(msg, c.keys.MoveRight):
		return app.DirectionRight, true, true
	case key.Matches(msg, c.keys.MoveUp):
		return app.DirectionUp, true, true
	case key.Matches(msg, c.keys.MoveDown):
		return app.DirectionDown, true, true
	case key.Matches(msg, c.keys.Left):
		return app.DirectionLeft, false, true
	case key.Matches(msg, c.keys.Right):
		return app.DirectionRight, false, true
	case key.Matches(msg, c.keys.Up):
		return app.DirectionUp, false, true
	case key.Matches(msg, c.keys.Down):
		return app.DirectionDown, false, true
	default:
		return app.DirectionUp, false, false
	}
}

// handleRowPopup handles keys for CreateRow and EditRow.
func (c *Controller) handleRowPopup(ctx context.Context, msg tea.KeyPressMsg, p *popup.RowPopup, edit bool) tea.Cmd {
	switch {
	case key.Matches(msg, c.keys.SubmitRow):
		title, description := p.Values()
		if edit {
			c.record("update row", c.board.UpdateRow(ctx, title, description), "title", title)
		} else {
			c.record("insert row", c.board.InsertRow(ctx, title, description), "title", title)
		}
		c.setMode(Normal{})
		return nil
	case key.Matches(msg, c.keys.Cancel):
		c.setMode(Normal{})
		return nil
	default:
		return p.HandleKey(msg)
	}
}

// handleColumnPopup handles keys for CreateColumn and EditColumn.
func (c *Controller) handleColumnPopup(ctx context.Context, msg tea.KeyPressMsg, p *popup.ColumnPopup, edit bool) tea.Cmd {
	switch {
	case key.Matches(msg, c.keys.Submit):
		title := p.Value()
		if edit {
			c.record("update column", c.board.UpdateColumn(ctx, title), "title", title)
		} else {
			c.record("create column", c.board.CreateColumn(ctx, title), "title", title)
		}
		c.toNormal()
		return nil
	case key.Matches(msg, c.keys.Cancel):
		c.toNormal()
		return nil
	default:
		return p.HandleKey(msg)
	}
}

// handleDialog handles keys for DeleteRow and DeleteColumn.
func (c *Controller) handleDialog(ctx context.Context, msg tea.KeyPressMsg, d *popup.Dialog, column bool) {
	switch {
	case key.Matches(msg, c.keys.Submit):
		if d.Confirmed() {
			if column {
				c.record("delete column", c.board.DeleteColumn(ctx))
			} else {
				c.record("delete row", c.board.DeleteRow(ctx))
			}
		}
		c.toNormal()
	case key.Matches(msg, c.keys.Cancel):
		c.toNormal()
	default:
		d.HandleKey(msg)
	}
}

// toNormal returns to Normal, or reopens CreateColumn when the board has no columns.
func (c *Controller) toNormal() {
	if !c.board.HasColumns() {
		c.setMode(CreateColumn{Popup: c.newColumnPopup("")})
		return
	}
	c.setMode(Normal{})
}

// yank copies the selected row to the clipboard.
func (c *Controller) yank() {
	row, ok := c.board.SelectedRow()
	if !ok {
		return
	}
	if err := c.copy(row.Title + "\n\n" + row.Description); err != nil {
		c.status = fmt.Sprintf("copy failed: %v", err)
		c.logger.Warn("clipboard write failed", "err", err)
		return
	}
	c.logger.Debug("row copied", "title", row.Title)
}

// record logs the outcome of a board mutation and updates the status line.
func (c *Controller) record(op string, err error, keyvals ...any) {
	if err != nil {
		c.status = fmt.Sprintf("%s failed: %v", op, err)
		c.logger.Error("board save failed", append([]any{"op", op, "path", c.board.Path(), "err", err}, keyvals...)...)
		return
	}
	c.status = ""
	c.logger.Debug("board updated", append([]any{"op", op, "path", c.board.Path()}, keyvals...)...)
}

// setMode switches the active mode.
func (c *Controller) setMode(m Mode) {
	if c.mode.Label() != m.Label() {
		c.logger.Debug("mode changed", "from", c.mode.Label(), "to", m.Label())
	}
	c.mode = m
}

// newRowPopup constructs a row popup sized to the current width.
func (c *Controller) newRowPopup(row *domain.Row) *popup.RowPopup {
	p := popup.NewRowPopup()
	if row != nil {
		p = popup.NewRowPopupFrom(*row)
	}
	if c.popupWidth > 0 {
		p.SetWidth(c.popupWidth)
	}
	return p
}

// newColumnPopup constructs a column popup sized to the current width.
func (c *Controller) newColumnPopup(title string) *popup.ColumnPopup {
	p := popup.NewColumnPopup(title)
	if c.popupWidth > 0 {
		p.SetWidth(c.popupWidth)
	}
	return p
}
