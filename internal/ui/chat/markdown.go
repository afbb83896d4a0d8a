// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/glamour"
)

// markdownRenderer caches a glamour renderer for one style and wrap width.
// Building a TermRenderer parses a whole stylesheet, so it is only rebuilt
// when either changes.
type markdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{}
}

// Render renders text as Markdown in style, wrapped at width.
func (r *markdownRenderer) Render(style, text string, width int) (string, error) {
	if r.renderer == nil || r.style != style || r.width != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		r.renderer = tr
		r.style = style
		r.width = width
	}
	return r.renderer.Render(text)
}
