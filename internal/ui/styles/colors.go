// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// TAILWIND REFERENCE COLORS
// =============================================================================

const (
	gray50  = lipgloss.Color("#F9FAFB")
	gray100 = lipgloss.Color("#F3F4F6")
	gray200 = lipgloss.Color("#E5E7EB")
	gray300 = lipgloss.Color("#D1D5DB")
	gray400 = lipgloss.Color("#9CA3AF")
	gray500 = lipgloss.Color("#6B7280")
	gray600 = lipgloss.Color("#4B5563")
	gray700 = lipgloss.Color("#374151")
	gray800 = lipgloss.Color("#1F2937")
	gray900 = lipgloss.Color("#111827")

	white = lipgloss.Color("#FFFFFF")

	purple100 = lipgloss.Color("#EDE9FE")
	purple400 = lipgloss.Color("#A78BFA")
	purple500 = lipgloss.Color("#8B5CF6")
	purple600 = lipgloss.Color("#7C3AED")
	blue600   = lipgloss.Color("#2563EB")
	pink500   = lipgloss.Color("#EC4899")

	red100 = lipgloss.Color("#FEE2E2")
	red200 = lipgloss.Color("#FECACA")
	red300 = lipgloss.Color("#FCA5A5")
	red400 = lipgloss.Color("#F87171")
	red500 = lipgloss.Color("#EF4444")
	red800 = lipgloss.Color("#991B1B")
	red900 = lipgloss.Color("#7F1D1D")

	green400  = lipgloss.Color("#4ADE80")
	yellow400 = lipgloss.Color("#FACC15")
)

// =============================================================================
// PALETTE
// =============================================================================

// Palette is the full set of colors one theme mode uses.
type Palette struct {
	Name string

	// Surfaces
	Background lipgloss.Color
	ChatArea   lipgloss.Color
	Panel      lipgloss.Color // menu, emoji picker
	Border     lipgloss.Color

	// Text
	Text      lipgloss.Color
	TextMuted lipgloss.Color // timestamps, footer
	TextDim   lipgloss.Color // placeholder, disabled

	// Accents
	Accent    lipgloss.Color
	AccentAlt lipgloss.Color

	// Header
	HeaderBg  lipgloss.Color
	HeaderFg  lipgloss.Color
	HeaderSub lipgloss.Color

	// Bubbles
	UserBubbleBg   lipgloss.Color
	UserBubbleFg   lipgloss.Color
	BotBubbleBg    lipgloss.Color
	BotBubbleFg    lipgloss.Color
	BotBubbleEdge  lipgloss.Color
	ErrorBubbleBg  lipgloss.Color
	ErrorBubbleFg  lipgloss.Color
	UserAvatar     lipgloss.Color
	BotAvatar      lipgloss.Color
	ErrorAvatar    lipgloss.Color
	DatePillBg     lipgloss.Color
	DatePillFg     lipgloss.Color
	TypingDot      lipgloss.Color
	SelectionBg    lipgloss.Color
	InputBg        lipgloss.Color
	InputFg        lipgloss.Color
	SendInactiveFg lipgloss.Color

	// Banner
	DangerBg     lipgloss.Color
	DangerFg     lipgloss.Color
	DangerButton lipgloss.Color

	// Status dots
	StatusOnline     lipgloss.Color
	StatusOffline    lipgloss.Color
	StatusConnecting lipgloss.Color

	// Action bar
	ActionPrimary   lipgloss.Color
	ActionSecondary lipgloss.Color
}

// DarkPalette returns the dark mode colors.
func DarkPalette() Palette {
	return Palette{
		Name: "dark",

		Background: gray900,
		ChatArea:   gray800,
		Panel:      gray700,
		Border:     gray700,

		Text:      gray100,
		TextMuted: gray500,
		TextDim:   gray400,

		Accent:    purple400,
		AccentAlt: blue600,

		HeaderBg:  purple600,
		HeaderFg:  white,
		HeaderSub: purple100,

		UserBubbleBg:   purple600,
		UserBubbleFg:   white,
		BotBubbleBg:    gray700,
		BotBubbleFg:    gray100,
		BotBubbleEdge:  gray700,
		ErrorBubbleBg:  red900,
		ErrorBubbleFg:  red200,
		UserAvatar:     purple500,
		BotAvatar:      pink500,
		ErrorAvatar:    red500,
		DatePillBg:     gray700,
		DatePillFg:     gray400,
		TypingDot:      purple400,
		SelectionBg:    gray600,
		InputBg:        gray700,
		InputFg:        gray100,
		SendInactiveFg: gray500,

		DangerBg:     red900,
		DangerFg:     red200,
		DangerButton: red800,

		StatusOnline:     green400,
		StatusOffline:    red400,
		StatusConnecting: yellow400,

		ActionPrimary:   purple400,
		ActionSecondary: gray400,
	}
}

// LightPalette returns the light mode colors.
func LightPalette() Palette {
	return Palette{
		Name: "light",

		Background: gray100,
		ChatArea:   gray50,
		Panel:      white,
		Border:     gray200,

		Text:      gray800,
		TextMuted: gray400,
		TextDim:   gray500,

		Accent:    purple600,
		AccentAlt: blue600,

		HeaderBg:  purple600,
		HeaderFg:  white,
		HeaderSub: purple100,

		UserBubbleBg:   purple600,
		UserBubbleFg:   white,
		BotBubbleBg:    white,
		BotBubbleFg:    gray800,
		BotBubbleEdge:  gray200,
		ErrorBubbleBg:  red100,
		ErrorBubbleFg:  red800,
		UserAvatar:     purple500,
		BotAvatar:      pink500,
		ErrorAvatar:    red500,
		DatePillBg:     gray200,
		DatePillFg:     gray500,
		TypingDot:      purple400,
		SelectionBg:    gray100,
		InputBg:        gray100,
		InputFg:        gray800,
		SendInactiveFg: gray400,

		DangerBg:     red100,
		DangerFg:     red800,
		DangerButton: red300,

		StatusOnline:     green400,
		StatusOffline:    red400,
		StatusConnecting: yellow400,

		ActionPrimary:   purple600,
		ActionSecondary: gray600,
	}
}

// PaletteFor returns the dark or light palette.
func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette()
	}
	return LightPalette()
}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusDot is the glyph drawn before the status label.
const StatusDot = "●"

// Avatar glyphs. Terminals cannot draw icons, so single emoji stand in.
const (
	UserGlyph  = "🧑"
	BotGlyph   = "🤖"
	ErrorGlyph = "⚠ "
)

