// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/llamachat/internal/ui/styles"
	"github.com/jeranaias/llamachat/internal/util"
)

const (
	placeholderReady   = "Type your message..."
	placeholderOffline = "Backend is offline. Press Ctrl+R to retry."

	// defaultComposerLines is used when the config leaves the limit unset.
	defaultComposerLines = 5
)

// =============================================================================
// COMPOSER
// =============================================================================

// newComposer creates the multi-line input. Enter is handled by the chat
// model, so only the newline bindings reach the textarea.
func newComposer(theme *styles.Theme) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholderReady
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	// No cap: a truncated paste would send a different question than the
	// one the user typed.
	ta.CharLimit = 0
	// The textarea refuses newlines past MaxHeight; the visible height is
	// capped by composerHeight instead.
	ta.MaxHeight = 0
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	applyComposerTheme(&ta, theme)
	ta.Focus()
	return ta
}

// applyComposerTheme restyles the textarea after a palette change.
func applyComposerTheme(ta *textarea.Model, theme *styles.Theme) {
	focused := ta.FocusedStyle
	focused.Base = lipgloss.NewStyle()
	focused.CursorLine = lipgloss.NewStyle()
	focused.Text = theme.InputText
	focused.Placeholder = theme.InputPlaceholder
	focused.EndOfBuffer = lipgloss.NewStyle().Foreground(theme.Palette.Border)
	ta.FocusedStyle = focused

	blurred := focused
	blurred.Text = theme.InputPlaceholder
	ta.BlurredStyle = blurred
}

// composerHeight returns how many rows value needs at width, between one
// and maxLines.
func composerHeight(value string, width, maxLines int) int {
	if maxLines < 1 {
		maxLines = defaultComposerLines
	}
	n := util.CountLines(value, width)
	if n < 1 {
		n = 1
	}
	if n > maxLines {
		n = maxLines
	}
	return n
}
