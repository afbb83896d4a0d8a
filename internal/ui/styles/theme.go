// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile
	Palette      Palette

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	HeaderStatus lipgloss.Style
	HeaderHint   lipgloss.Style

	// ==========================================================================
	// OVERLAYS
	// ==========================================================================

	MenuBox          lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemSelected lipgloss.Style

	EmojiBox      lipgloss.Style
	EmojiCell     lipgloss.Style
	EmojiSelected lipgloss.Style
	EmojiHint     lipgloss.Style

	// ==========================================================================
	// BANNER
	// ==========================================================================

	Banner       lipgloss.Style
	BannerButton lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT
	// ==========================================================================

	ChatArea    lipgloss.Style
	DatePill    lipgloss.Style
	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ErrorBubble lipgloss.Style
	Timestamp   lipgloss.Style
	UserAvatar  lipgloss.Style
	BotAvatar   lipgloss.Style
	ErrorAvatar lipgloss.Style
	TypingDots  lipgloss.Style

	// ==========================================================================
	// COMPOSER
	// ==========================================================================

	InputBox         lipgloss.Style
	InputBoxDisabled lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	SendActive       lipgloss.Style
	SendInactive     lipgloss.Style
	EmojiButton      lipgloss.Style

	// ==========================================================================
	// FOOTER AND ACTION BAR
	// ==========================================================================

	Footer          lipgloss.Style
	ActionBar       lipgloss.Style
	ActionPrimary   lipgloss.Style
	ActionSecondary lipgloss.Style
	ActionKey       lipgloss.Style
	Notice          lipgloss.Style
	NoticeError     lipgloss.Style
}

// NewTheme creates a theme for the given mode.
func NewTheme(dark bool) *Theme {
	t := &Theme{
		IsDark:       dark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// ResolveDark maps a configured theme name to dark or light. "auto" asks
// the terminal; anything unrecognised is dark.
func ResolveDark(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return false
	case "auto":
		return termenv.HasDarkBackground()
	default:
		return true
	}
}

// Toggle swaps between the dark and light palettes.
func (t *Theme) Toggle() {
	t.SetDark(!t.IsDark)
}

// SetDark selects a palette, rebuilding styles only when it changes.
func (t *Theme) SetDark(dark bool) {
	if t.IsDark == dark && t.Palette.Name != "" {
		return
	}
	t.IsDark = dark
	t.initStyles()
}

// GlamourStyle returns the glamour standard style matching the palette.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// StatusColor returns the dot color for a status rendered as online,
// offline or connecting.
func (t *Theme) StatusColor(online, offline bool) lipgloss.Color {
	switch {
	case online:
		return t.Palette.StatusOnline
	case offline:
		return t.Palette.StatusOffline
	default:
		return t.Palette.StatusConnecting
	}
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// BubbleMaxWidth returns the widest a message bubble may be: 80% of the
// chat width, leaving room for the avatar column.
func (t *Theme) BubbleMaxWidth() int {
	w := t.Width*8/10 - 4
	if w < 20 {
		w = 20
	}
	return w
}

// initStyles builds every style from the active palette.
func (t *Theme) initStyles() {
	p := PaletteFor(t.IsDark)
	t.Palette = p

	// Header
	t.Header = lipgloss.NewStyle().
		Background(p.HeaderBg).
		Foreground(p.HeaderFg).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Background(p.HeaderBg).
		Foreground(p.HeaderFg).
		Bold(true)
	t.HeaderStatus = lipgloss.NewStyle().
		Background(p.HeaderBg).
		Foreground(p.HeaderSub)
	t.HeaderHint = lipgloss.NewStyle().
		Background(p.HeaderBg).
		Foreground(p.HeaderSub).
		Faint(true)

	// Options menu
	t.MenuBox = lipgloss.NewStyle().
		Background(p.Panel).
		Foreground(p.Text).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 1)
	t.MenuItem = lipgloss.NewStyle().
		Foreground(p.Text).
		Padding(0, 1)
	t.MenuItemSelected = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.SelectionBg).
		Bold(true).
		Padding(0, 1)

	// Emoji picker
	t.EmojiBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	t.EmojiCell = lipgloss.NewStyle().Padding(0, 1)
	t.EmojiSelected = lipgloss.NewStyle().
		Background(p.SelectionBg).
		Padding(0, 1)
	t.EmojiHint = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Banner
	t.Banner = lipgloss.NewStyle().
		Background(p.DangerBg).
		Foreground(p.DangerFg).
		Padding(0, 1)
	t.BannerButton = lipgloss.NewStyle().
		Background(p.DangerButton).
		Foreground(p.DangerFg).
		Padding(0, 1)

	// Transcript
	t.ChatArea = lipgloss.NewStyle().Padding(0, 1)
	t.DatePill = lipgloss.NewStyle().
		Background(p.DatePillBg).
		Foreground(p.DatePillFg).
		Padding(0, 2)
	t.UserBubble = lipgloss.NewStyle().
		Background(p.UserBubbleBg).
		Foreground(p.UserBubbleFg).
		Padding(0, 2)
	t.BotBubble = lipgloss.NewStyle().
		Background(p.BotBubbleBg).
		Foreground(p.BotBubbleFg).
		Padding(0, 2)
	t.ErrorBubble = lipgloss.NewStyle().
		Background(p.ErrorBubbleBg).
		Foreground(p.ErrorBubbleFg).
		Padding(0, 2)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(p.TextMuted)
	t.UserAvatar = lipgloss.NewStyle().Foreground(p.UserAvatar)
	t.BotAvatar = lipgloss.NewStyle().Foreground(p.BotAvatar)
	t.ErrorAvatar = lipgloss.NewStyle().Foreground(p.ErrorAvatar)
	t.TypingDots = lipgloss.NewStyle().
		Foreground(p.TypingDot).
		Bold(true)

	// Composer
	t.InputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 1)
	t.InputBoxDisabled = t.InputBox.
		BorderForeground(p.Border)
	t.InputText = lipgloss.NewStyle().Foreground(p.InputFg)
	t.InputPlaceholder = lipgloss.NewStyle().Foreground(p.TextDim)
	t.SendActive = lipgloss.NewStyle().
		Background(p.UserBubbleBg).
		Foreground(p.UserBubbleFg).
		Bold(true).
		Padding(0, 1)
	t.SendInactive = lipgloss.NewStyle().
		Foreground(p.SendInactiveFg).
		Padding(0, 1)
	t.EmojiButton = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Padding(0, 1)

	// Footer and action bar
	t.Footer = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Padding(0, 1)
	t.ActionBar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Border).
		Align(lipgloss.Center)
	t.ActionPrimary = lipgloss.NewStyle().Foreground(p.ActionPrimary)
	t.ActionSecondary = lipgloss.NewStyle().Foreground(p.ActionSecondary)
	t.ActionKey = lipgloss.NewStyle().Foreground(p.TextMuted).Faint(true)
	t.Notice = lipgloss.NewStyle().Foreground(p.Accent).Italic(true)
	t.NoticeError = lipgloss.NewStyle().Foreground(p.StatusOffline).Italic(true)
}
