// Package tui hosts the Bubble Tea program that renders a board and feeds
// key presses to the modal controller.
package tui

import (
	"context"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/evanschultz/tack/internal/app"
	"github.com/evanschultz/tack/internal/modal"
)

// Model is the Bubble Tea model for one open board.
type Model struct {
	ctrl           *modal.Controller
	controllerOpts []modal.Option
	help           help.Model
	md             *markdownRenderer
	width          int
	height         int
	showHelp       bool
	showPreview    bool
}

// NewModel constructs a model editing board.
func NewModel(board *app.Board, opts ...Option) Model {
	m := Model{
		help:        help.New(),
		md:          &markdownRenderer{},
		showPreview: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.ctrl = modal.New(board, m.controllerOpts...)
	return m
}

// Controller returns the modal controller driving the model.
func (m Model) Controller() *modal.Controller {
	return m.ctrl
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ctrl.SetPopupWidth(popupWidth(m.width))
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

// handleKey routes one key press to the help overlay or the controller.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	keys := m.ctrl.Keys()
	if m.showHelp {
		switch {
		case key.Matches(msg, keys.Help), key.Matches(msg, keys.Cancel):
			m.showHelp = false
			return m, nil
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}
	if _, ok := m.ctrl.Mode().(modal.Normal); ok && key.Matches(msg, keys.Help) {
		m.showHelp = true
		return m, nil
	}
	cmd := m.ctrl.HandleKey(context.Background(), msg)
	if m.ctrl.Quit() {
		return m, tea.Quit
	}
	return m, cmd
}

// popupWidth returns the text buffer width for a terminal width.
func popupWidth(width int) int {
	return clamp(width-16, 24, 72)
}
