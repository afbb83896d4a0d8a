// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/llamachat/internal/session"
	"github.com/jeranaias/llamachat/internal/ui/styles"
	"github.com/jeranaias/llamachat/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: assistant name, availability and menu hint.
type Header struct {
	Title   string
	Status  session.APIStatus
	Probing bool
	Width   int
	theme   *styles.Theme
}

// NewHeader creates a Header with default values.
func NewHeader(theme *styles.Theme, title string) *Header {
	if title == "" {
		title = "Llama2 Assistant"
	}
	return &Header{
		Title:  title,
		Status: session.StatusAvailable,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetStatus updates the availability shown.
func (h *Header) SetStatus(status session.APIStatus, probing bool) {
	h.Status = status
	h.Probing = probing
}

// StatusText returns the label next to the dot.
func (h *Header) StatusText() string {
	if h.Probing {
		return "Checking..."
	}
	return h.Status.Label()
}

// View renders the header across the full width.
func (h *Header) View() string {
	t := h.theme
	width := h.Width
	if width < 30 {
		width = 30
	}

	dot := lipgloss.NewStyle().
		Background(t.Palette.HeaderBg).
		Foreground(t.StatusColor(h.Status == session.StatusAvailable, h.Status == session.StatusUnavailable)).
		Render(styles.StatusDot)

	left := t.HeaderTitle.Render("✨ "+h.Title) +
		t.HeaderStatus.Render("  ") + dot +
		t.HeaderStatus.Render(" "+h.StatusText())
	right := t.HeaderHint.Render("⋮ Ctrl+O")

	inner := width - 2 // Header padding
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = t.HeaderTitle.Render(util.TruncateWidth("✨ "+h.Title, inner-lipgloss.Width(right)-1))
		gap = inner - lipgloss.Width(left) - lipgloss.Width(right)
		if gap < 1 {
			gap = 1
		}
	}

	line := left + t.HeaderStatus.Render(strings.Repeat(" ", gap)) + right
	return t.Header.Width(width).Render(line)
}
