// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/llamachat/internal/model"
	"github.com/jeranaias/llamachat/internal/ui/styles"
	"github.com/jeranaias/llamachat/internal/util"
)

// DefaultTimeFormat is the 12-hour time shown under each bubble.
const DefaultTimeFormat = "03:04 PM"

// avatarCell is the width reserved for the avatar column.
const avatarCell = 3

// =============================================================================
// MESSAGE VIEW
// =============================================================================

// BodyRenderer turns bot text into display lines no wider than width.
// Returning an error falls back to plain word wrapping.
type BodyRenderer func(text string, width int) (string, error)

// MessageView renders transcript rows: date pills, bubbles and the typing
// indicator.
//
// Rendered bubbles are cached by message ID. Messages never change after
// creation, so the cache only has to follow width and theme; anything
// else that alters output (TimeFormat, Markdown) must call Invalidate.
type MessageView struct {
	TimeFormat string
	Markdown   BodyRenderer
	theme      *styles.Theme

	cache      map[bubbleKey]string
	cacheWidth int
	cacheDark  bool
}

type bubbleKey struct {
	id     string
	avatar bool
}

// NewMessageView creates a view using the default time format.
func NewMessageView(theme *styles.Theme) *MessageView {
	return &MessageView{TimeFormat: DefaultTimeFormat, theme: theme}
}

// Invalidate drops every cached bubble.
func (v *MessageView) Invalidate() {
	v.cache = nil
}

func (v *MessageView) cached() int {
	return len(v.cache)
}

// Avatar returns the glyph cell for a sender. Hidden avatars keep the
// column so continuation bubbles stay aligned.
func (v *MessageView) Avatar(msg *model.Message, visible bool) string {
	if !visible {
		return strings.Repeat(" ", avatarCell)
	}
	t := v.theme
	switch {
	case msg.IsUser():
		return t.UserAvatar.Render(" " + styles.UserGlyph)
	case msg.IsError:
		return t.ErrorAvatar.Render(padAvatar(styles.ErrorGlyph))
	default:
		return t.BotAvatar.Render(padAvatar(styles.BotGlyph))
	}
}

func padAvatar(glyph string) string {
	w := util.StringWidth(glyph)
	if w >= avatarCell {
		return glyph
	}
	return glyph + strings.Repeat(" ", avatarCell-w)
}

// DatePill renders a bucket label centered in width.
func (v *MessageView) DatePill(label string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, v.theme.DatePill.Render(label))
}

// Render draws one message. User bubbles sit on the right, bot bubbles on
// the left, each with its time underneath.
func (v *MessageView) Render(msg *model.Message, showAvatar bool, width int) string {
	if v.cache == nil || v.cacheWidth != width || v.cacheDark != v.theme.IsDark {
		v.cache = make(map[bubbleKey]string)
		v.cacheWidth = width
		v.cacheDark = v.theme.IsDark
	}
	key := bubbleKey{id: msg.ID, avatar: showAvatar}
	if out, ok := v.cache[key]; ok {
		return out
	}
	out := v.render(msg, showAvatar, width)
	v.cache[key] = out
	return out
}

func (v *MessageView) render(msg *model.Message, showAvatar bool, width int) string {
	t := v.theme
	maxW := t.BubbleMaxWidth()
	if avail := width - avatarCell - 1; maxW > avail {
		maxW = avail
	}
	if maxW < 10 {
		maxW = 10
	}

	style := t.BotBubble
	switch {
	case msg.IsUser():
		style = t.UserBubble
	case msg.IsError:
		style = t.ErrorBubble
	}

	// Bubble padding is two cells on each side.
	textW := maxW - 4
	body := v.body(msg, textW)
	bubble := style.Render(body)

	layout := v.TimeFormat
	if layout == "" {
		layout = DefaultTimeFormat
	}
	stamp := t.Timestamp.Render(msg.Timestamp.Format(layout))

	avatar := v.Avatar(msg, showAvatar)
	if msg.IsUser() {
		col := lipgloss.JoinVertical(lipgloss.Right, bubble, stamp)
		row := lipgloss.JoinHorizontal(lipgloss.Top, col, " ", avatar)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, row)
	}
	col := lipgloss.JoinVertical(lipgloss.Left, bubble, stamp)
	return lipgloss.JoinHorizontal(lipgloss.Top, avatar, " ", col)
}

// body wraps the message text, rendering bot replies as markdown when a
// renderer is set.
func (v *MessageView) body(msg *model.Message, width int) string {
	if !msg.IsUser() && !msg.IsError && v.Markdown != nil {
		if out, err := v.Markdown(msg.Text, width); err == nil {
			if s := strings.Trim(out, "\n"); s != "" {
				return s
			}
		}
	}
	text := msg.Text
	if text == "" {
		text = " "
	}
	return strings.Join(util.WrapLines(text, width), "\n")
}

// Typing renders the bot avatar next to a bubble holding the spinner frame.
func (v *MessageView) Typing(frame string) string {
	t := v.theme
	avatar := t.BotAvatar.Render(padAvatar(styles.BotGlyph))
	return lipgloss.JoinHorizontal(lipgloss.Top, avatar, " ", t.BotBubble.Render(t.TypingDots.Render(frame)))
}

// RenderBuckets draws the whole transcript grouped by day.
func (v *MessageView) RenderBuckets(buckets []model.Bucket, width int) string {
	var b strings.Builder
	for bi, bucket := range buckets {
		if bi > 0 {
			b.WriteString("\n")
		}
		b.WriteString(v.DatePill(bucket.Label, width))
		b.WriteString("\n")
		for i, msg := range bucket.Messages {
			if !bucket.Continues(i) {
				b.WriteString("\n")
			}
			b.WriteString(v.Render(msg, bucket.ShowAvatar(i), width))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
