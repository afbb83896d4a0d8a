// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringWidth returns the number of terminal cells s occupies.
// Wide glyphs such as CJK and most emoji count as 2.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth cuts s to at most maxWidth cells, ending with "..." when
// anything was removed and there is room for it.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// WrapLines soft-wraps text into lines no wider than width cells.
// Hard newlines always start a new line; words longer than width are
// broken mid-word. An empty string is one empty line.
func WrapLines(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapParagraph(para, width)...)
	}
	return out
}

func wrapParagraph(para string, width int) []string {
	if para == "" {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0

	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curWidth = 0
	}

	for i, word := range strings.Split(para, " ") {
		ww := runewidth.StringWidth(word)
		sep := 0
		if i > 0 {
			sep = 1
		}

		if curWidth+sep+ww <= width {
			if sep == 1 {
				cur.WriteByte(' ')
			}
			cur.WriteString(word)
			curWidth += sep + ww
			continue
		}

		if curWidth > 0 {
			flush()
		}
		for ww > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// A single glyph wider than the line; emit it alone.
				r := []rune(word)
				head = string(r[:1])
			}
			lines = append(lines, head)
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		cur.WriteString(word)
		curWidth = ww
	}
	flush()
	return lines
}

// CountLines returns how many rows text needs in a box width cells wide.
func CountLines(text string, width int) int {
	return len(WrapLines(text, width))
}
