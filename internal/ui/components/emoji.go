// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/llamachat/internal/ui/styles"
)

// EmojiColumns is the width of the picker grid.
const EmojiColumns = 6

// EmojiPicker is a grid of glyphs navigated with the arrow keys.
type EmojiPicker struct {
	Emojis []string
	cursor int
	theme  *styles.Theme
}

// NewEmojiPicker creates a picker over emojis.
func NewEmojiPicker(theme *styles.Theme, emojis []string) *EmojiPicker {
	return &EmojiPicker{Emojis: emojis, theme: theme}
}

// Move shifts the cursor by dx columns and dy rows, clamped to the grid.
func (p *EmojiPicker) Move(dx, dy int) {
	if len(p.Emojis) == 0 {
		return
	}
	row, col := p.cursor/EmojiColumns, p.cursor%EmojiColumns
	col += dx
	row += dy

	if col < 0 {
		col = 0
	}
	if col >= EmojiColumns {
		col = EmojiColumns - 1
	}
	if row < 0 {
		row = 0
	}
	next := row*EmojiColumns + col
	if next >= len(p.Emojis) {
		next = len(p.Emojis) - 1
	}
	p.cursor = next
}

// Selected returns the glyph under the cursor, or "" if there are none.
func (p *EmojiPicker) Selected() string {
	if len(p.Emojis) == 0 {
		return ""
	}
	return p.Emojis[p.cursor]
}

// Reset puts the cursor on the first glyph.
func (p *EmojiPicker) Reset() {
	p.cursor = 0
}

// View renders the grid with the selected cell highlighted.
func (p *EmojiPicker) View() string {
	t := p.theme
	var rows []string
	for start := 0; start < len(p.Emojis); start += EmojiColumns {
		end := start + EmojiColumns
		if end > len(p.Emojis) {
			end = len(p.Emojis)
		}
		var cells []string
		for i := start; i < end; i++ {
			glyph := padCell(p.Emojis[i])
			if i == p.cursor {
				cells = append(cells, t.EmojiSelected.Render(glyph))
			} else {
				cells = append(cells, t.EmojiCell.Render(glyph))
			}
		}
		rows = append(rows, strings.Join(cells, ""))
	}
	rows = append(rows, t.EmojiHint.Render("arrows move · enter insert · esc close"))
	return t.EmojiBox.Render(strings.Join(rows, "\n"))
}

// padCell pads a glyph to two cells so narrow-reported emoji still line up.
func padCell(glyph string) string {
	if w := runewidth.StringWidth(glyph); w < 2 {
		return glyph + strings.Repeat(" ", 2-w)
	}
	return glyph
}
