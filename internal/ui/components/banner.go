// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/llamachat/internal/ui/styles"
	"github.com/jeranaias/llamachat/internal/util"
)

// OfflineMessage is the text of the offline banner.
const OfflineMessage = "Backend server is not responding. Make sure your Flask server is running."

// Banner renders the offline alert shown while the backend is unavailable.
type Banner struct {
	Message string
	Width   int
	theme   *styles.Theme
}

// NewBanner creates a banner with the default offline message.
func NewBanner(theme *styles.Theme) *Banner {
	return &Banner{Message: OfflineMessage, Width: 80, theme: theme}
}

// View renders the banner, truncating the message to fit.
func (b *Banner) View() string {
	t := b.theme
	button := t.BannerButton.Render("Retry ^R")
	inner := b.Width - 2
	avail := inner - lipgloss.Width(button) - 1

	msg := util.TruncateWidth(styles.ErrorGlyph+b.Message, avail)
	gap := inner - util.StringWidth(msg) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	return t.Banner.Width(b.Width).Render(msg + strings.Repeat(" ", gap) + button)
}
