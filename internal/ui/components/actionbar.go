// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/llamachat/internal/ui/styles"
)

// Action is one entry of the bottom bar.
type Action struct {
	Label   string
	Key     string
	Primary bool
}

// DefaultActions are New Chat, Save Chat and Check API.
var DefaultActions = []Action{
	{Label: "↻ New Chat", Key: "^N", Primary: true},
	{Label: "▤ Save Chat", Key: "^S"},
	{Label: "⚡ Check API", Key: "^R"},
}

// ActionBar renders the bottom action bar.
type ActionBar struct {
	Actions []Action
	Width   int
	theme   *styles.Theme
}

// NewActionBar creates an action bar with DefaultActions.
func NewActionBar(theme *styles.Theme) *ActionBar {
	return &ActionBar{Actions: DefaultActions, Width: 80, theme: theme}
}

// View renders the actions centred.
func (a *ActionBar) View() string {
	t := a.theme
	parts := make([]string, 0, len(a.Actions))
	for _, act := range a.Actions {
		style := t.ActionSecondary
		if act.Primary {
			style = t.ActionPrimary
		}
		parts = append(parts, style.Render(act.Label)+" "+t.ActionKey.Render(act.Key))
	}
	return t.ActionBar.Width(a.Width).Render(strings.Join(parts, "    "))
}
