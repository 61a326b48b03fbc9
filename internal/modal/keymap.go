package modal

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// KeyConfig holds user overrides for the remappable bindings. Blank fields keep defaults.
type KeyConfig struct {
	CreateRow    string
	EditRow      string
	DeleteRow    string
	CreateColumn string
	EditColumn   string
	DeleteColumn string
	SubmitRow    string
	Quit         string
	Yank         string
}

// KeyMap lists every binding the controller dispatches on.
type KeyMap struct {
	Quit         key.Binding
	ForceQuit    key.Binding
	Help         key.Binding
	CreateRow    key.Binding
	EditRow      key.Binding
	DeleteRow    key.Binding
	CreateColumn key.Binding
	EditColumn   key.Binding
	DeleteColumn key.Binding
	Yank         key.Binding
	SubmitRow    key.Binding
	Submit       key.Binding
	Cancel       key.Binding
	Left         key.Binding
	Right        key.Binding
	Up           key.Binding
	Down         key.Binding
	MoveLeft     key.Binding
	MoveRight    key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding
}

// DefaultKeyMap constructs the default key map.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		CreateRow:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create item")),
		EditRow:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit item")),
		DeleteRow:    key.NewBinding(key.WithKeys("d", "backspace"), key.WithHelp("d", "delete item")),
		CreateColumn: key.NewBinding(key.WithKeys("C", "shift+c"), key.WithHelp("C", "create column")),
		EditColumn:   key.NewBinding(key.WithKeys("E", "shift+e"), key.WithHelp("E", "edit column")),
		DeleteColumn: key.NewBinding(key.WithKeys("D", "shift+d"), key.WithHelp("D", "delete column")),
		Yank:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy item")),
		SubmitRow:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "submit")),
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column left")),
		Right:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column right")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "item up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "item down")),
		MoveLeft:     key.NewBinding(key.WithKeys("shift+left", "H", "shift+h"), key.WithHelp("⇧←/H", "move item left")),
		MoveRight:    key.NewBinding(key.WithKeys("shift+right", "L", "shift+l"), key.WithHelp("⇧→/L", "move item right")),
		MoveUp:       key.NewBinding(key.WithKeys("shift+up", "K", "shift+k"), key.WithHelp("⇧↑/K", "move item up")),
		MoveDown:     key.NewBinding(key.WithKeys("shift+down", "J", "shift+j"), key.WithHelp("⇧↓/J", "move item down")),
	}
}

// applyConfig applies non-empty overrides.
func (k *KeyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.CreateRow, cfg.CreateRow, "c", "create item")
	configureBinding(&k.EditRow, cfg.EditRow, "e", "edit item", "enter")
	configureBinding(&k.DeleteRow, cfg.DeleteRow, "d", "delete item", "backspace")
	configureBinding(&k.CreateColumn, cfg.CreateColumn, "C", "create column")
	configureBinding(&k.EditColumn, cfg.EditColumn, "E", "edit column")
	configureBinding(&k.DeleteColumn, cfg.DeleteColumn, "D", "delete column")
	configureBinding(&k.SubmitRow, cfg.SubmitRow, "ctrl+d", "submit")
	configureBinding(&k.Quit, cfg.Quit, "q", "quit", "ctrl+c")
	configureBinding(&k.Yank, cfg.Yank, "y", "copy item")
}

// configureBinding replaces b's keys when raw is set; blank raw leaves b untouched.
// fixed keys stay bound after the override.
func configureBinding(b *key.Binding, raw, fallback, desc string, fixed ...string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	keys, help := parseBindingKeys(raw, fallback)
	for _, k := range fixed {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	b.SetKeys(keys...)
	b.SetHelp(help, desc)
}

// parseBindingKeys turns a configured key into matcher strings and help text.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	if strings.EqualFold(raw, "space") || raw == " " {
		return []string{" ", "space"}, "space"
	}
	if utf8.RuneCountInString(raw) == 1 {
		r, _ := utf8.DecodeRuneInString(raw)
		if unicode.IsUpper(r) {
			return []string{raw, "shift+" + string(unicode.ToLower(r))}, raw
		}
		return []string{raw}, raw
	}
	return []string{strings.ToLower(raw)}, raw
}

// ShortHelp returns the compact help line bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CreateRow, k.EditRow, k.DeleteRow, k.CreateColumn, k.Help, k.Quit}
}

// FullHelp returns grouped bindings for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.CreateRow, k.EditRow, k.DeleteRow, k.Yank},
		{k.CreateColumn, k.EditColumn, k.DeleteColumn, k.Help, k.Quit},
	}
}
