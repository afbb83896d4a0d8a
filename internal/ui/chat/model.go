// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/llamachat/internal/backend"
	"github.com/jeranaias/llamachat/internal/config"
	"github.com/jeranaias/llamachat/internal/session"
	"github.com/jeranaias/llamachat/internal/ui/components"
	"github.com/jeranaias/llamachat/internal/ui/styles"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a chat Model. Zero fields get defaults.
type Options struct {
	Config     *config.Config
	Session    *session.Session
	Client     *backend.Client
	Logger     *zap.Logger
	ConfigPath string // shown by the Settings menu entry
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	cfg        *config.Config
	configPath string
	session    *session.Session
	client     *backend.Client
	logger     *zap.Logger

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Components
	header   *components.Header
	banner   *components.Banner
	actions  *components.ActionBar
	menu     *components.OptionsMenu
	picker   *components.EmojiPicker
	messages *components.MessageView
	markdown *markdownRenderer

	// Bubbles
	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	keys KeyMap

	// composerMax caps the composer height in rows.
	composerMax int

	// Footer notice, replaced by the idle status after noticeDuration.
	notice    string
	noticeErr bool
	noticeSeq int
}

// New creates a chat model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sess := opts.Session
	if sess == nil {
		sess = session.New(
			session.WithGreeting(cfg.UI.Greeting),
			session.WithDarkMode(styles.ResolveDark(cfg.UI.Theme)),
			session.WithProbeQuestion(cfg.Backend.ProbeQuestion),
		)
	}
	client := opts.Client
	if client == nil {
		client = backend.NewClientWithConfig(cfg.Backend.ClientConfig(logger))
	}

	theme := styles.NewTheme(sess.IsDarkMode())

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"●∙∙", "∙●∙", "∙∙●", "∙●∙"},
		FPS:    spinnerFPS,
	}
	sp.Style = theme.TypingDots

	mv := components.NewMessageView(theme)
	mv.TimeFormat = cfg.UI.TimeFormat

	m := Model{
		cfg:         cfg,
		configPath:  opts.ConfigPath,
		session:     sess,
		client:      client,
		logger:      logger,
		theme:       theme,
		header:      components.NewHeader(theme, cfg.UI.AssistantName),
		banner:      components.NewBanner(theme),
		actions:     components.NewActionBar(theme),
		menu:        components.NewOptionsMenu(theme),
		picker:      components.NewEmojiPicker(theme, session.Emojis),
		messages:    mv,
		markdown:    newMarkdownRenderer(),
		viewport:    viewport.New(80, 20),
		input:       newComposer(theme),
		spinner:     sp,
		keys:        DefaultKeyMap(),
		composerMax: cfg.UI.MaxComposerLines,
	}
	m.wireMarkdown()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink and, when configured, the startup probe.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.cfg.Backend.ProbeOnStart {
		cmds = append(cmds, m.startProbe())
	}
	return tea.Batch(cmds...)
}

// View renders the whole screen.
func (m Model) View() string {
	return m.render()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Session returns the session the model drives.
func (m Model) Session() *session.Session {
	return m.session
}

// Client returns the active backend client.
func (m Model) Client() *backend.Client {
	return m.client
}

// Theme returns the active theme.
func (m Model) Theme() *styles.Theme {
	return m.theme
}

// Draft returns the composer contents.
func (m Model) Draft() string {
	return m.input.Value()
}

// Notice returns the footer notice, if any.
func (m Model) Notice() string {
	return m.notice
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

// wireMarkdown points the message view at glamour, or at nothing when
// Markdown rendering is off.
func (m *Model) wireMarkdown() {
	m.messages.Invalidate()
	if !m.cfg.UI.RenderMarkdown {
		m.messages.Markdown = nil
		return
	}
	md := m.markdown
	theme := m.theme
	m.messages.Markdown = func(text string, width int) (string, error) {
		return md.Render(theme.GlamourStyle(), text, width)
	}
}

// setNotice shows msg in the footer and schedules its removal.
func (m *Model) setNotice(msg string, isErr bool) tea.Cmd {
	m.noticeSeq++
	m.notice = msg
	m.noticeErr = isErr
	return clearNoticeCmd(m.noticeSeq)
}

// syncFocus blurs the composer while the backend is unavailable. The emoji
// picker closes with it, since it only feeds the composer.
func (m *Model) syncFocus() {
	if m.session.ComposerEnabled() {
		m.input.Placeholder = placeholderReady
		if !m.input.Focused() {
			m.input.Focus()
		}
		return
	}
	m.input.Placeholder = placeholderOffline
	m.input.Blur()
	m.session.CloseEmojiPicker()
}
