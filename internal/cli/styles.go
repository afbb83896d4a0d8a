// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/llamachat/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var palette = styles.DarkPalette()

var (
	// Prompt style
	promptStyle = lipgloss.NewStyle().
			Foreground(palette.Accent).
			Bold(true)

	// Welcome banner style
	welcomeStyle = lipgloss.NewStyle().
			Foreground(palette.AccentAlt).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted)

	botLabelStyle = lipgloss.NewStyle().
			Foreground(palette.BotAvatar).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(palette.StatusOffline).
			Bold(true)

	onlineStyle = lipgloss.NewStyle().
			Foreground(palette.StatusOnline).
			Bold(true)

	connectingStyle = lipgloss.NewStyle().
			Foreground(palette.StatusConnecting).
			Bold(true)
)

// statusStyle returns the style for an availability label.
func statusStyle(online, offline bool) lipgloss.Style {
	switch {
	case online:
		return onlineStyle
	case offline:
		return errorStyle
	default:
		return connectingStyle
	}
}
