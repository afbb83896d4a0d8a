// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/llamachat/internal/model"
	"github.com/jeranaias/llamachat/internal/session"
	"github.com/jeranaias/llamachat/internal/ui/styles"
)

func newTestTheme() *styles.Theme {
	th := styles.NewTheme(true)
	th.SetSize(80, 24)
	return th
}

// =============================================================================
// HEADER
// =============================================================================

func TestHeader_StatusText(t *testing.T) {
	h := NewHeader(newTestTheme(), "")
	assert.Equal(t, "Llama2 Assistant", h.Title)
	assert.Equal(t, "Online", h.StatusText())

	h.SetStatus(session.StatusUnavailable, false)
	assert.Equal(t, "Offline", h.StatusText())

	h.SetStatus(session.StatusError, false)
	assert.Equal(t, "Connecting...", h.StatusText())

	h.SetStatus(session.StatusError, true)
	assert.Equal(t, "Checking...", h.StatusText())
}

func TestHeader_ViewFitsWidth(t *testing.T) {
	h := NewHeader(newTestTheme(), "Llama2 Assistant")
	h.SetWidth(60)

	out := h.View()
	assert.Contains(t, out, "Llama2 Assistant")
	assert.Contains(t, out, "Online")
	assert.Equal(t, 60, lipgloss.Width(out))
}

func TestHeader_LongTitleTruncated(t *testing.T) {
	h := NewHeader(newTestTheme(), strings.Repeat("x", 200))
	h.SetWidth(40)
	assert.LessOrEqual(t, lipgloss.Width(h.View()), 40)
}

// =============================================================================
// BANNER AND ACTION BAR
// =============================================================================

func TestBanner_View(t *testing.T) {
	b := NewBanner(newTestTheme())
	b.Width = 120
	out := b.View()
	assert.Contains(t, out, "Backend server is not responding")
	assert.Contains(t, out, "Retry")
}

func TestActionBar_View(t *testing.T) {
	a := NewActionBar(newTestTheme())
	out := a.View()
	for _, label := range []string{"New Chat", "Save Chat", "Check API"} {
		assert.Contains(t, out, label)
	}
}

// =============================================================================
// OPTIONS MENU
// =============================================================================

func TestOptionsMenu_Navigation(t *testing.T) {
	m := NewOptionsMenu(newTestTheme())
	assert.Equal(t, MenuToggleTheme, m.Selected())

	m.Down()
	assert.Equal(t, MenuClearChat, m.Selected())

	m.Up()
	m.Up()
	assert.Equal(t, MenuSettings, m.Selected(), "up wraps to the last entry")

	m.Down()
	assert.Equal(t, MenuToggleTheme, m.Selected(), "down wraps to the first entry")

	m.Down()
	m.Reset()
	assert.Equal(t, MenuToggleTheme, m.Selected())
}

func TestMenuAction_ThemeLabel(t *testing.T) {
	assert.Contains(t, MenuToggleTheme.Label(true), "Light Mode")
	assert.Contains(t, MenuToggleTheme.Label(false), "Dark Mode")
	assert.Contains(t, MenuCheckConnection.Label(true), "Check Connection")
}

func TestOptionsMenu_View(t *testing.T) {
	th := newTestTheme()
	m := NewOptionsMenu(th)
	out := m.View(80)
	assert.Contains(t, out, "Light Mode")
	assert.Contains(t, out, "Clear Chat")

	th.SetDark(false)
	assert.Contains(t, m.View(80), "Dark Mode")
}

// =============================================================================
// EMOJI PICKER
// =============================================================================

func TestEmojiPicker_Move(t *testing.T) {
	p := NewEmojiPicker(newTestTheme(), session.Emojis)
	assert.Equal(t, session.Emojis[0], p.Selected())

	p.Move(1, 0)
	assert.Equal(t, 1, p.cursor)

	p.Move(0, 1)
	assert.Equal(t, 1+EmojiColumns, p.cursor)

	p.Move(10, 0)
	assert.Equal(t, 2*EmojiColumns-1, p.cursor, "column clamps at the right edge")

	p.Move(0, 5)
	assert.Equal(t, len(session.Emojis)-1, p.cursor, "clamps to the last glyph")

	p.Move(-10, -10)
	assert.Equal(t, 0, p.cursor)

	p.Move(2, 0)
	p.Reset()
	assert.Equal(t, 0, p.cursor)
}

func TestEmojiPicker_Empty(t *testing.T) {
	p := NewEmojiPicker(newTestTheme(), nil)
	p.Move(1, 1)
	assert.Equal(t, "", p.Selected())
}

func TestEmojiPicker_ViewHasEveryGlyph(t *testing.T) {
	p := NewEmojiPicker(newTestTheme(), session.Emojis)
	out := p.View()
	for _, e := range session.Emojis {
		assert.Contains(t, out, e)
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

var at = time.Date(2024, time.March, 10, 14, 5, 0, 0, time.Local)

func TestMessageView_RenderUserRightAligned(t *testing.T) {
	v := NewMessageView(newTestTheme())
	out := v.Render(model.NewUserMessage("hello", at), true, 80)

	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "02:05 PM")
	assert.True(t, strings.HasPrefix(lines[0], " "), "user bubble is padded from the left")
	assert.Equal(t, 80, lipgloss.Width(lines[0]))
}

func TestMessageView_RenderBotLeftAligned(t *testing.T) {
	v := NewMessageView(newTestTheme())
	out := v.Render(model.NewBotMessage("hi there", at), true, 80)
	assert.Contains(t, out, styles.BotGlyph)
	assert.Contains(t, out, "hi there")
}

func TestMessageView_HiddenAvatarKeepsColumn(t *testing.T) {
	v := NewMessageView(newTestTheme())
	msg := model.NewBotMessage("again", at)
	out := v.Render(msg, false, 80)
	assert.NotContains(t, out, styles.BotGlyph)
	assert.True(t, strings.HasPrefix(out, "    "))
}

func TestMessageView_ErrorBubble(t *testing.T) {
	v := NewMessageView(newTestTheme())
	out := v.Render(model.NewErrorMessage(session.ErrorReply, at), true, 80)
	assert.Contains(t, out, "trouble connecting")
	assert.NotContains(t, out, styles.BotGlyph)
}

func TestMessageView_WrapsLongText(t *testing.T) {
	v := NewMessageView(newTestTheme())
	long := strings.Repeat("word ", 60)
	out := v.Render(model.NewBotMessage(long, at), true, 80)
	assert.Greater(t, strings.Count(out, "\n"), 2)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 80)
	}
}

func TestMessageView_MarkdownFallback(t *testing.T) {
	v := NewMessageView(newTestTheme())
	v.Markdown = func(string, int) (string, error) { return "", errors.New("render failed") }
	out := v.Render(model.NewBotMessage("plain **text**", at), true, 80)
	assert.Contains(t, out, "plain **text**")

	v.Markdown = func(text string, _ int) (string, error) { return "RENDERED", nil }
	assert.Contains(t, v.Render(model.NewBotMessage("x", at), true, 80), "RENDERED")
	assert.NotContains(t, v.Render(model.NewUserMessage("mine", at), true, 80), "RENDERED",
		"user text is never rendered as markdown")
}

func TestMessageView_RenderBuckets(t *testing.T) {
	v := NewMessageView(newTestTheme())
	msgs := []*model.Message{
		model.NewBotMessage("greeting", at.AddDate(0, 0, -1)),
		model.NewUserMessage("q1", at),
		model.NewUserMessage("q2", at),
		model.NewBotMessage("a", at),
	}
	buckets := model.GroupByDate(msgs, at, "")
	require.Len(t, buckets, 2)

	out := v.RenderBuckets(buckets, 80)
	assert.Contains(t, out, model.LabelYesterday)
	assert.Contains(t, out, model.LabelToday)
	assert.Less(t, strings.Index(out, model.LabelYesterday), strings.Index(out, model.LabelToday))
	assert.Equal(t, 1, strings.Count(out, styles.UserGlyph), "consecutive user messages share one avatar")
}

func TestMessageView_Typing(t *testing.T) {
	v := NewMessageView(newTestTheme())
	assert.Contains(t, v.Typing("..."), "...")
}

func TestMessageView_CachesBubbles(t *testing.T) {
	th := newTestTheme()
	v := NewMessageView(th)
	calls := 0
	v.Markdown = func(text string, _ int) (string, error) {
		calls++
		return text, nil
	}
	msg := model.NewBotMessage("cached **answer**", at)

	first := v.Render(msg, true, 80)
	assert.Equal(t, first, v.Render(msg, true, 80))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, v.cached())

	v.Render(msg, false, 80)
	assert.Equal(t, 2, calls, "avatar visibility is part of the key")

	v.Render(msg, true, 60)
	assert.Equal(t, 3, calls, "width change drops the cache")
	assert.Equal(t, 1, v.cached())

	th.SetDark(false)
	v.Render(msg, true, 60)
	assert.Equal(t, 4, calls, "theme change drops the cache")

	v.Invalidate()
	assert.Zero(t, v.cached())
	v.Render(msg, true, 60)
	assert.Equal(t, 5, calls)
}
