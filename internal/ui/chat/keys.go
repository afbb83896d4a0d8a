// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Send     key.Binding
	Newline  key.Binding
	Menu     key.Binding
	Emoji    key.Binding
	Theme    key.Binding
	NewChat  key.Binding
	Save     key.Binding
	CheckAPI key.Binding
	Copy     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Close    key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		// Alt+Enter stands in for Shift+Enter, which terminals do not report.
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("Alt+Enter/C-j", "new line"),
		),
		Menu: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "options"),
		),
		Emoji: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "emoji"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "toggle theme"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save chat"),
		),
		CheckAPI: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "check API"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy last answer"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c/C-q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer hint.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Newline, k.Menu, k.Emoji, k.Quit}
}

// FullHelp returns every binding grouped by purpose.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Composer
		{k.Send, k.Newline, k.Emoji},
		// Conversation
		{k.NewChat, k.Save, k.Copy, k.CheckAPI},
		// View
		{k.Menu, k.Theme, k.PageUp, k.PageDown, k.Quit},
	}
}
