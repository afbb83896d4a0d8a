// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the llamachat TUI.

The UI has an explicit dark/light toggle, so colors are not adaptive.
Each mode has its own Palette and a Theme is rebuilt from whichever one
is active.

# Palettes (colors.go)

	DarkPalette()  - gray-900 surfaces, purple/blue accents
	LightPalette() - white and gray-100 surfaces, the same accents

Both share the purple-to-blue user bubble and header, red tones for error
bubbles and the offline banner, and green/red/yellow status dots.

# Theme (theme.go)

	theme := styles.NewTheme(styles.ResolveDark("auto"))
	theme.Toggle()
	bubble := theme.UserBubble.Render("hello")

ResolveDark asks termenv whether the terminal background is dark when the
configured theme is "auto".
*/
package styles
