package tui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/evanschultz/tack/internal/modal"
	"github.com/evanschultz/tack/internal/popup"
)

// navigationHint is shown on the status bar when there is no status message.
const navigationHint = "Move Cursor: ↑↓←→ | Move Item: ⇧↑↓←→"

// palette groups the colors used by one render pass.
type palette struct {
	accent color.Color
	muted  color.Color
	dim    color.Color
	warn   color.Color
}

func defaultPalette() palette {
	return palette{
		accent: lipgloss.Color("62"),
		muted:  lipgloss.Color("241"),
		dim:    lipgloss.Color("239"),
		warn:   lipgloss.Color("203"),
	}
}

// View implements tea.Model.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full screen as a string.
func (m Model) render() string {
	p := defaultPalette()

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(p.muted).
		BorderTop(true).
		BorderForeground(p.dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.ctrl.Keys()))
	footer := m.renderStatusBar(p) + "\n" + helpLine

	header := m.renderHeader(p)
	preview := m.renderPreview(p)
	reserved := lipgloss.Height(header) + 1 + lipgloss.Height(footer)
	if preview != "" {
		reserved += lipgloss.Height(preview)
	}
	sections := []string{header, "", m.renderBoard(p, m.columnHeight(reserved))}
	if preview != "" {
		sections = append(sections, preview)
	}
	content := strings.Join(sections, "\n")
	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(footer)))
	}
	full := content + "\n" + footer

	overlay := m.renderModeOverlay(p)
	if m.showHelp {
		overlay = m.renderHelpOverlay(p, m.width-8)
	}
	if overlay != "" {
		height := lipgloss.Height(full)
		if m.height > 0 {
			height = m.height
		}
		full = overlayOnContent(full, overlay, max(1, m.width), max(1, height))
	}
	return full
}

// renderHeader draws the app name and the board title.
func (m Model) renderHeader(p palette) string {
	board := m.ctrl.Board()
	title := board.Title()
	if strings.TrimSpace(title) == "" {
		title = filepath.Base(board.Path())
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Render("tack") + "  " + title
	if path := board.Path(); path != "" {
		header += lipgloss.NewStyle().Foreground(p.dim).Render("  " + path)
	}
	return header
}

// renderBoard draws the columns side by side.
func (m Model) renderBoard(p palette, height int) string {
	board := m.ctrl.Board()
	columns := board.Columns()
	if len(columns) == 0 {
		return lipgloss.NewStyle().Foreground(p.muted).Render("No columns yet. Create one to start.")
	}
	selected, _ := board.SelectedColumnIndex()
	colWidth := columnWidthFor(m.width, len(columns))
	innerHeight := max(1, height-4)

	base := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.dim).
		Padding(1, 2).
		MarginRight(1).
		Width(colWidth)
	focused := base.BorderForeground(p.accent)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(p.accent)
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(p.muted)

	views := make([]string, 0, len(columns))
	for colIdx, col := range columns {
		header := titleStyle.Render(truncate(fmt.Sprintf("%s (%d)", col.Title, col.Len()), colWidth))
		selectedRow, hasRow := board.SelectedRowIndex(colIdx)

		lines := make([]string, 0, len(col.Rows)*2)
		start, end := -1, -1
		if len(col.Rows) == 0 {
			lines = append(lines, emptyStyle.Render("(empty)"))
		}
		for rowIdx, row := range col.Rows {
			isSelected := hasRow && rowIdx == selectedRow
			prefix := "   "
			if isSelected {
				prefix = "│  "
				start = len(lines)
			}
			title := prefix + truncate(row.Title, max(1, colWidth-4))
			if isSelected {
				title = rowStyle.Render(title)
			}
			lines = append(lines, title)
			if sub := firstLine(row.Description); sub != "" {
				lines = append(lines, prefix+subStyle.Render(truncate(sub, max(1, colWidth-4))))
			}
			if isSelected {
				end = len(lines) - 1
			}
		}
		window := max(1, innerHeight-1)
		lines = scrollWindow(lines, start, end, window)

		content := fitLines(strings.Join(append([]string{header}, lines...), "\n"), innerHeight)
		if colIdx == selected {
			views = append(views, focused.Render(content))
		} else {
			views = append(views, base.Render(content))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// renderPreview draws the selected row description as markdown.
func (m Model) renderPreview(p palette) string {
	if !m.showPreview {
		return ""
	}
	if _, ok := m.ctrl.Mode().(modal.Normal); !ok {
		return ""
	}
	row, ok := m.ctrl.Board().SelectedRow()
	if !ok || strings.TrimSpace(row.Description) == "" {
		return ""
	}
	width := max(minPreviewWrap, m.width-6)
	body := m.md.render(row.Description, width)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.dim).
		Padding(0, 1).
		Render(lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render(row.Title) + "\n" + body)
}

// renderStatusBar draws the hint or status message with the mode label.
func (m Model) renderStatusBar(p palette) string {
	left := lipgloss.NewStyle().Foreground(p.muted).Render(navigationHint)
	if status := m.ctrl.Status(); status != "" {
		left = lipgloss.NewStyle().Foreground(p.warn).Render(status)
	}
	right := lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render(m.ctrl.Mode().Label())
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

// renderModeOverlay draws the active popup or dialog, if any.
func (m Model) renderModeOverlay(p palette) string {
	keys := m.ctrl.Keys()
	switch mode := m.ctrl.Mode().(type) {
	case modal.CreateRow:
		return renderRowPopup(p, "New Item", mode.Popup, keys)
	case modal.EditRow:
		return renderRowPopup(p, "Edit Item", mode.Popup, keys)
	case modal.CreateColumn:
		return renderColumnPopup(p, "New Column", mode.Popup, keys)
	case modal.EditColumn:
		return renderColumnPopup(p, "Edit Column", mode.Popup, keys)
	case modal.DeleteRow:
		return renderDialog(p, "Delete Item", mode.Dialog)
	case modal.DeleteColumn:
		return renderDialog(p, "Delete Column", mode.Dialog)
	default:
		return ""
	}
}

func popupStyle(p palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.accent).
		Padding(0, 1)
}

// fieldLabel renders a field caption, highlighted when focused.
func fieldLabel(p palette, label string, focused bool) string {
	if focused {
		return lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render(label)
	}
	return lipgloss.NewStyle().Foreground(p.muted).Render(label)
}

func renderRowPopup(p palette, heading string, rp *popup.RowPopup, keys modal.KeyMap) string {
	hint := fmt.Sprintf("tab switch field • %s submit • %s cancel", keys.SubmitRow.Help().Key, keys.Cancel.Help().Key)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(heading),
		"",
		fieldLabel(p, popup.RowFieldTitle.Label(), rp.Focused == popup.RowFieldTitle),
		rp.Title.View(),
		"",
		fieldLabel(p, popup.RowFieldDescription.Label(), rp.Focused == popup.RowFieldDescription),
		rp.Description.View(),
		"",
		lipgloss.NewStyle().Foreground(p.muted).Render(hint),
	}
	return popupStyle(p).Render(strings.Join(lines, "\n"))
}

func renderColumnPopup(p palette, heading string, cp *popup.ColumnPopup, keys modal.KeyMap) string {
	hint := fmt.Sprintf("%s submit • %s cancel", keys.Submit.Help().Key, keys.Cancel.Help().Key)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(heading),
		"",
		fieldLabel(p, popup.ColumnFieldTitle.Label(), true),
		cp.Title.View(),
		"",
		lipgloss.NewStyle().Foreground(p.muted).Render(hint),
	}
	return popupStyle(p).Render(strings.Join(lines, "\n"))
}

func renderDialog(p palette, heading string, d *popup.Dialog) string {
	button := func(field popup.DialogField) string {
		style := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(p.dim)
		if d.Focused == field {
			style = style.BorderForeground(p.accent).Bold(true).Foreground(p.accent)
		}
		return style.Render(field.Label())
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, button(popup.DialogConfirm), " ", button(popup.DialogCancel))
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(p.warn).Render(heading),
		"",
		d.Message,
		"",
		buttons,
	}
	return popupStyle(p).BorderForeground(p.warn).Render(strings.Join(lines, "\n"))
}

// renderHelpOverlay draws the full key reference.
func (m Model) renderHelpOverlay(p palette, maxWidth int) string {
	width := clamp(maxWidth, 56, 100)
	hb := m.help
	hb.ShowAll = true
	hb.SetWidth(width - 4)

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render("tack help"),
		lipgloss.NewStyle().Foreground(p.muted).Render("Navigate • Move Item • Create/Edit/Delete Item • Create/Edit/Delete Column"),
		"",
		hb.View(m.ctrl.Keys()),
		"",
		lipgloss.NewStyle().Foreground(p.muted).Render("press ? or esc to close"),
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.dim).
		Padding(0, 1)
	if maxWidth > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// columnHeight returns the outer height of a column box given the lines used elsewhere.
func (m Model) columnHeight(reserved int) int {
	if m.height <= 0 {
		return 14
	}
	return max(6, m.height-reserved)
}

// columnWidthFor returns the inner width of each column for the terminal width.
func columnWidthFor(boardWidth, columns int) int {
	if columns == 0 {
		return 24
	}
	w := 28
	if boardWidth > 0 {
		// border (2), horizontal padding (4), margin-right (1)
		const colOverhead = 7
		if candidate := (boardWidth - columns*colOverhead) / columns; candidate > 0 {
			w = candidate
		}
	}
	return clamp(w, 16, 42)
}

// scrollWindow keeps the selected span [start, end] visible in a window of height lines.
func scrollWindow(lines []string, start, end, height int) []string {
	if len(lines) <= height {
		return lines
	}
	top := 0
	if start >= 0 {
		if end >= top+height {
			top = end - height + 1
		}
		if start < top {
			top = start
		}
	}
	top = clamp(top, 0, len(lines)-height)
	return lines[top : top+height]
}

// firstLine returns the first non-empty line of s.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// clamp clamps v to [minV, maxV].
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// fitLines pads or cuts content to exactly maxLines lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		lines = append(lines, make([]string, maxLines-len(lines))...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent centers overlay over base.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	centered := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
	canvas.Compose(lipgloss.NewLayer(base).X(0).Y(0).Z(0))
	canvas.Compose(lipgloss.NewLayer(centered).X(0).Y(0).Z(10))
	return canvas.Render()
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
