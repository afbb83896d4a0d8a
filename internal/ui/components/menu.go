// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/llamachat/internal/ui/styles"
)

// MenuAction identifies an options menu entry.
type MenuAction int

const (
	MenuToggleTheme MenuAction = iota
	MenuClearChat
	MenuCheckConnection
	MenuSaveChat
	MenuSettings
)

// menuOrder is the display order of the options menu.
var menuOrder = []MenuAction{
	MenuToggleTheme,
	MenuClearChat,
	MenuCheckConnection,
	MenuSaveChat,
	MenuSettings,
}

// Label returns the entry text. The theme entry names the mode it would
// switch to.
func (a MenuAction) Label(dark bool) string {
	switch a {
	case MenuToggleTheme:
		if dark {
			return "☀ Light Mode"
		}
		return "☾ Dark Mode"
	case MenuClearChat:
		return "🗑 Clear Chat"
	case MenuCheckConnection:
		return "↻ Check Connection"
	case MenuSaveChat:
		return "▤ Save Chat"
	case MenuSettings:
		return "⚙ Settings"
	default:
		return "?"
	}
}

// OptionsMenu is the header dropdown. It tracks only the cursor.
type OptionsMenu struct {
	cursor int
	theme  *styles.Theme
}

// NewOptionsMenu creates a menu with the cursor on the first entry.
func NewOptionsMenu(theme *styles.Theme) *OptionsMenu {
	return &OptionsMenu{theme: theme}
}

// Items returns the entries in display order.
func (m *OptionsMenu) Items() []MenuAction {
	return menuOrder
}

// Up moves the cursor up, wrapping at the top.
func (m *OptionsMenu) Up() {
	m.cursor = (m.cursor - 1 + len(menuOrder)) % len(menuOrder)
}

// Down moves the cursor down, wrapping at the bottom.
func (m *OptionsMenu) Down() {
	m.cursor = (m.cursor + 1) % len(menuOrder)
}

// Selected returns the entry under the cursor.
func (m *OptionsMenu) Selected() MenuAction {
	return menuOrder[m.cursor]
}

// Reset puts the cursor back on the first entry.
func (m *OptionsMenu) Reset() {
	m.cursor = 0
}

// View renders the menu box, right-aligned within width.
func (m *OptionsMenu) View(width int) string {
	t := m.theme
	rows := make([]string, 0, len(menuOrder))
	for i, item := range m.Items() {
		label := item.Label(t.IsDark)
		if i == m.cursor {
			rows = append(rows, t.MenuItemSelected.Render("› "+label))
		} else {
			rows = append(rows, t.MenuItem.Render("  "+label))
		}
	}
	rows = append(rows, t.EmojiHint.Render(" ↑/↓ move · enter select · esc close"))

	box := t.MenuBox.Render(strings.Join(rows, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, box)
}
