// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/llamachat/internal/model"
	"github.com/jeranaias/llamachat/internal/session"
)

const (
	minWidth  = 40
	minHeight = 12

	sendLabel  = "➤ Send"
	emojiLabel = "☺"
)

// =============================================================================
// LAYOUT
// =============================================================================

// refresh re-lays out the screen and rebuilds the transcript content.
// toBottom scrolls to the newest message. Call it after anything that
// changes what the transcript shows.
func (m *Model) refresh(toBottom bool) {
	m.layout()
	width, _ := m.size()
	m.viewport.SetContent(m.renderTranscript(width))
	if toBottom {
		m.viewport.GotoBottom()
	}
}

// layout recomputes component sizes without touching transcript content.
// The viewport gets whatever height the chrome leaves.
func (m *Model) layout() {
	width, _ := m.size()

	m.header.SetWidth(width)
	m.header.SetStatus(m.session.Status(), m.session.Probing())
	m.banner.Width = width
	m.actions.Width = width

	// Composer: border (2) + padding (2) + send and emoji buttons.
	inputW := width - 4 - lipgloss.Width(m.sendButton()) - lipgloss.Width(m.theme.EmojiButton.Render(emojiLabel)) - 1
	if inputW < 10 {
		inputW = 10
	}
	m.input.SetWidth(inputW)
	m.input.SetHeight(composerHeight(m.input.Value(), inputW, m.composerMax))

	atBottom := m.viewport.AtBottom()
	m.viewport.Width = width
	m.viewport.Height = m.transcriptHeight()
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// size returns the usable screen size, never below the minimum layout.
func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}
	return w, h
}

// transcriptHeight is the screen height minus every other section.
func (m Model) transcriptHeight() int {
	_, height := m.size()
	used := 0
	for _, s := range m.chromeTop() {
		used += lipgloss.Height(s)
	}
	for _, s := range m.chromeBottom() {
		used += lipgloss.Height(s)
	}
	if h := height - used; h > 1 {
		return h
	}
	return 1
}

// =============================================================================
// RENDERING
// =============================================================================

func (m Model) render() string {
	if m.width == 0 {
		return "Initializing..."
	}

	sections := m.chromeTop()
	sections = append(sections, m.viewport.View())
	sections = append(sections, m.chromeBottom()...)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// chromeTop is header, options menu and retry banner.
func (m Model) chromeTop() []string {
	width, _ := m.size()
	state := m.session.State()

	out := []string{m.header.View()}
	if state.ShowOptionsMenu {
		out = append(out, m.menu.View(width))
	}
	if m.session.ShowRetryBanner() {
		out = append(out, m.banner.View())
	}
	return out
}

// chromeBottom is typing indicator, emoji picker, composer, footer and
// action bar.
func (m Model) chromeBottom() []string {
	state := m.session.State()

	var out []string
	if state.IsTyping {
		out = append(out, " "+m.messages.Typing(m.spinner.View()))
	}
	if state.ShowEmojiPicker {
		out = append(out, m.picker.View())
	}
	out = append(out, m.renderComposer(), m.renderFooter(), m.actions.View())
	return out
}

// renderTranscript draws every message grouped by day.
func (m Model) renderTranscript(width int) string {
	inner := width - m.theme.ChatArea.GetHorizontalPadding()
	buckets := model.GroupByDate(m.session.Messages(), m.session.Now(), m.cfg.UI.DateFormat)
	return m.theme.ChatArea.Render(m.messages.RenderBuckets(buckets, inner))
}

func (m Model) sendButton() string {
	if m.session.CanSend() {
		return m.theme.SendActive.Render(sendLabel)
	}
	return m.theme.SendInactive.Render(sendLabel)
}

func (m Model) renderComposer() string {
	width, _ := m.size()
	t := m.theme

	box := t.InputBox
	if !m.session.ComposerEnabled() {
		box = t.InputBoxDisabled
	}

	emoji := t.EmojiButton.Render(emojiLabel)
	send := m.sendButton()
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, emoji, m.input.View(), " ", send)
	return box.Width(width - 2).Render(row)
}

func (m Model) renderFooter() string {
	width, _ := m.size()
	t := m.theme

	left := t.Footer.Render(m.cfg.UI.Footer)

	var right string
	switch {
	case m.notice != "" && m.noticeErr:
		right = t.NoticeError.Render(m.notice)
	case m.notice != "":
		right = t.Notice.Render(m.notice)
	case m.session.Status() == session.StatusUnavailable:
		right = t.NoticeError.Render("Backend offline")
	default:
		right = t.Footer.Render("Ready to chat")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + "\n" + right
	}
	return left + strings.Repeat(" ", gap) + right
}
