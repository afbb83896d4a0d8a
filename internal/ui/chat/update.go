// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/llamachat/internal/backend"
	"github.com/jeranaias/llamachat/internal/config"
	"github.com/jeranaias/llamachat/internal/export"
	"github.com/jeranaias/llamachat/internal/model"
	"github.com/jeranaias/llamachat/internal/session"
	"github.com/jeranaias/llamachat/internal/ui/components"
	"github.com/jeranaias/llamachat/internal/ui/styles"
)

const spinnerFPS = time.Second / 6

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ProbeResultMsg:
		return m.handleProbeResult(msg)

	case AskResultMsg:
		return m.handleAskResult(msg)

	case SaveResultMsg:
		if msg.Err != nil {
			m.logger.Warn("save chat failed", zap.Error(msg.Err))
			return m, m.setNotice("Save failed: "+msg.Err.Error(), true)
		}
		m.logger.Info("chat saved", zap.String("path", msg.Path))
		return m, m.setNotice("Saved to "+msg.Path, false)

	case CopyResultMsg:
		if msg.Err != nil {
			return m, m.setNotice("Clipboard unavailable: "+msg.Err.Error(), true)
		}
		return m, m.setNotice(fmt.Sprintf("Copied answer (%d chars)", msg.Chars), false)

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeErr = false
		}
		return m, nil

	case spinner.TickMsg:
		// The spinner only runs while a reply is pending.
		if !m.session.IsTyping() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)
	m.refresh(true)
	return m, nil
}

func (m Model) handleProbeResult(msg ProbeResultMsg) (tea.Model, tea.Cmd) {
	status := m.session.ApplyProbe(msg.Err)
	if msg.Err != nil {
		m.logger.Warn("backend probe failed",
			zap.String("endpoint", m.endpoint()),
			zap.Stringer("type", backend.TypeOf(msg.Err)),
			zap.Error(msg.Err))
	} else {
		m.logger.Info("backend probe succeeded", zap.String("endpoint", m.endpoint()))
	}
	m.syncFocus()
	m.layout()
	m.logger.Debug("api status", zap.Stringer("status", status))
	return m, nil
}

func (m Model) handleAskResult(msg AskResultMsg) (tea.Model, tea.Cmd) {
	if err := m.session.CompleteSend(msg.Answer, msg.Err); err != nil {
		m.logger.Warn("unexpected ask result", zap.Error(err))
		return m, nil
	}
	if msg.Err != nil {
		m.logger.Warn("ask failed",
			zap.Stringer("type", backend.TypeOf(msg.Err)),
			zap.Error(msg.Err))
	} else if last := m.session.Conversation().Last(); last != nil {
		m.logger.Debug("answer received", zap.String("preview", last.Preview(60)))
	}
	m.syncFocus()
	m.refresh(true)
	return m, nil
}

func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("config reload rejected", zap.Error(msg.Err))
		return m, m.setNotice("Config not reloaded: "+msg.Err.Error(), true)
	}
	cmd := m.applyConfig(msg.Config)
	m.logger.Info("config reloaded")
	return m, tea.Batch(cmd, m.setNotice("Config reloaded", false))
}

// applyConfig re-applies theme, Markdown, labels and backend settings.
// A changed backend section gets a fresh client and a new probe.
func (m *Model) applyConfig(cfg *config.Config) tea.Cmd {
	if cfg == nil {
		return nil
	}
	old := m.cfg
	m.cfg = cfg

	dark := styles.ResolveDark(cfg.UI.Theme)
	m.session.SetDarkMode(dark)
	m.setThemeDark(dark)

	m.header.Title = cfg.UI.AssistantName
	m.messages.TimeFormat = cfg.UI.TimeFormat
	m.composerMax = cfg.UI.MaxComposerLines
	m.wireMarkdown()

	var cmd tea.Cmd
	if old == nil || old.Backend != cfg.Backend {
		m.client = backend.NewClientWithConfig(cfg.Backend.ClientConfig(m.logger))
		m.logger.Info("backend client recreated", zap.String("endpoint", m.client.Endpoint()))
		cmd = m.startProbe()
	}
	m.refresh(false)
	return cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	state := m.session.State()
	if state.ShowOptionsMenu {
		return m.handleMenuKey(msg)
	}
	if state.ShowEmojiPicker {
		return m.handleEmojiKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Menu):
		m.session.ToggleOptionsMenu()
		m.menu.Reset()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Emoji):
		if !m.session.ComposerEnabled() {
			return m, nil
		}
		m.session.ToggleEmojiPicker()
		m.picker.Reset()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		return m, m.clearChat()

	case key.Matches(msg, m.keys.Save):
		return m, m.saveChat()

	case key.Matches(msg, m.keys.CheckAPI):
		return m, m.startProbe()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLastAnswer()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Close):
		return m, nil

	case key.Matches(msg, m.keys.Send):
		return m.send()
	}

	if !m.session.ComposerEnabled() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetDraft(m.input.Value())
	m.layout()
	return m, cmd
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.menu.Up()
	case key.Matches(msg, m.keys.Down):
		m.menu.Down()
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Menu):
		m.session.CloseOptionsMenu()
	case key.Matches(msg, m.keys.Select):
		return m.selectMenu(m.menu.Selected())
	default:
		return m, nil
	}
	m.layout()
	return m, nil
}

func (m Model) selectMenu(action components.MenuAction) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch action {
	case components.MenuToggleTheme:
		m.toggleTheme()
		return m, nil
	case components.MenuClearChat:
		cmd = m.clearChat()
	case components.MenuCheckConnection:
		m.session.CloseOptionsMenu()
		cmd = m.startProbe()
	case components.MenuSaveChat:
		m.session.CloseOptionsMenu()
		cmd = m.saveChat()
	case components.MenuSettings:
		m.session.CloseOptionsMenu()
		path := m.configPath
		if path == "" {
			path, _ = config.ConfigPath()
		}
		cmd = m.setNotice("Settings: "+path, false)
	}
	m.refresh(false)
	return m, cmd
}

func (m Model) handleEmojiKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.picker.Move(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.picker.Move(1, 0)
	case key.Matches(msg, m.keys.Up):
		m.picker.Move(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.picker.Move(0, 1)
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Emoji):
		m.session.CloseEmojiPicker()
	case key.Matches(msg, m.keys.Select):
		m.session.InsertEmoji(m.picker.Selected())
		m.input.SetValue(m.session.Draft())
		m.input.Focus()
	default:
		return m, nil
	}
	m.layout()
	return m, nil
}

// =============================================================================
// ACTIONS
// =============================================================================

// send starts one ask. Rejected sends leave everything untouched.
func (m Model) send() (tea.Model, tea.Cmd) {
	m.session.SetDraft(m.input.Value())
	req, err := m.session.BeginSend()
	if err != nil {
		if !errors.Is(err, session.ErrEmptyDraft) {
			m.logger.Debug("send rejected", zap.Error(err))
		}
		return m, nil
	}

	m.logger.Debug("sending question",
		zap.Int("question_len", len(req.Question)),
		zap.Int("history_len", len(req.History)))

	m.input.Reset()
	m.input.SetHeight(1)
	m.refresh(true)
	return m, tea.Batch(askCmd(m.client, req), m.spinner.Tick)
}

// startProbe marks a probe in flight and returns the command running it.
func (m *Model) startProbe() tea.Cmd {
	q := m.session.BeginProbe()
	m.logger.Debug("probing backend", zap.String("endpoint", m.endpoint()), zap.String("question", q))
	m.layout()
	return probeCmd(m.client)
}

func (m *Model) toggleTheme() {
	m.session.ToggleTheme()
	m.setThemeDark(m.session.IsDarkMode())
	m.refresh(false)
}

func (m *Model) setThemeDark(dark bool) {
	m.theme.SetDark(dark)
	m.spinner.Style = m.theme.TypingDots
	applyComposerTheme(&m.input, m.theme)
}

func (m *Model) clearChat() tea.Cmd {
	m.session.ClearChat()
	m.messages.Invalidate()
	m.refresh(true)
	m.logger.Debug("chat cleared")
	return m.setNotice("Started a new chat", false)
}

func (m *Model) saveChat() tea.Cmd {
	dir, err := m.cfg.ExportDir()
	if err != nil {
		return m.setNotice("Save failed: "+err.Error(), true)
	}
	t := export.NewTranscript(m.cfg.UI.AssistantName, m.session.Messages(), m.session.Now())
	return saveCmd(t, m.cfg.Export.Format, &export.Options{
		OutputDir:         dir,
		IncludeTimestamps: true,
		TimeFormat:        m.cfg.UI.TimeFormat,
		DateFormat:        m.cfg.UI.DateFormat,
	})
}

func (m *Model) copyLastAnswer() tea.Cmd {
	last := m.session.Conversation().LastFrom(model.SenderBot)
	if last == nil || last.Text == "" {
		return m.setNotice("No answer to copy", true)
	}
	return copyCmd(last.Text)
}

func (m *Model) endpoint() string {
	if m.client == nil {
		return ""
	}
	return m.client.Endpoint()
}
