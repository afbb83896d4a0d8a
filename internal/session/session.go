// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/llamachat/internal/backend"
	"github.com/jeranaias/llamachat/internal/model"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// DefaultGreeting is the bot message a fresh conversation starts with.
const DefaultGreeting = "Hey there! 👋 I'm your AI companion powered by Llama2. What's on your mind today?"

// ErrorReply is shown in place of an answer when a send fails.
const ErrorReply = "I'm having trouble connecting to my brain right now. Please check if the backend server is running or try again later."

// DefaultProbeQuestion is the placeholder the availability probe asks.
const DefaultProbeQuestion = "ping"

// Emojis are the glyphs offered by the emoji picker, in display order.
var Emojis = []string{"😊", "👍", "🎉", "❤️", "😂", "🤔", "👋", "🔥", "✨", "🙏", "👏", "🌟"}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyDraft is returned by BeginSend when the draft is blank.
	ErrEmptyDraft = errors.New("draft is empty")

	// ErrSendInFlight is returned by BeginSend while a reply is pending.
	ErrSendInFlight = errors.New("a message is already being sent")

	// ErrBackendUnavailable is returned by BeginSend after a failed probe.
	ErrBackendUnavailable = errors.New("backend is unavailable")

	// ErrNoSendPending is returned by CompleteSend when nothing was sent.
	ErrNoSendPending = errors.New("no send pending")
)

// =============================================================================
// STATE
// =============================================================================

// UiState is the process-local view state. It is reset on restart.
type UiState struct {
	Draft           string
	IsTyping        bool
	IsDarkMode      bool
	ShowEmojiPicker bool
	ShowOptionsMenu bool
	APIStatus       APIStatus
}

// Request is what BeginSend hands to the network layer.
type Request struct {
	// Question is the draft exactly as typed.
	Question string
	// History is every prior message plus the new one.
	History []backend.Turn
}

// Session owns the conversation and UiState.
type Session struct {
	conv  *model.Conversation
	state UiState

	now           func() time.Time
	greeting      string
	probeQuestion string
	probing       bool

	// oneShot sessions start and clear to an empty transcript.
	oneShot bool
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithGreeting overrides the bot greeting.
func WithGreeting(greeting string) Option {
	return func(s *Session) {
		if strings.TrimSpace(greeting) != "" {
			s.greeting = greeting
		}
	}
}

// WithoutGreeting starts the session with no messages, so the first
// request carries only the user's own turn.
func WithoutGreeting() Option {
	return func(s *Session) {
		s.oneShot = true
	}
}

// WithDarkMode sets the initial theme.
func WithDarkMode(dark bool) Option {
	return func(s *Session) {
		s.state.IsDarkMode = dark
	}
}

// WithProbeQuestion overrides the question BeginProbe returns.
func WithProbeQuestion(q string) Option {
	return func(s *Session) {
		if q != "" {
			s.probeQuestion = q
		}
	}
}

// New creates a session holding a single greeting, dark mode on, and an
// optimistic Available status.
func New(opts ...Option) *Session {
	s := &Session{
		now:           time.Now,
		greeting:      DefaultGreeting,
		probeQuestion: DefaultProbeQuestion,
		state: UiState{
			IsDarkMode: true,
			APIStatus:  StatusAvailable,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.oneShot {
		s.conv = model.NewConversation()
	} else {
		s.conv = model.NewConversationWithGreeting(s.greeting, s.now())
	}
	return s
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns a copy of the current UiState.
func (s *Session) State() UiState { return s.state }

// Status returns the current APIStatus.
func (s *Session) Status() APIStatus { return s.state.APIStatus }

// Draft returns the composer text.
func (s *Session) Draft() string { return s.state.Draft }

// IsTyping reports whether a reply is pending.
func (s *Session) IsTyping() bool { return s.state.IsTyping }

// IsDarkMode reports whether the dark theme is active.
func (s *Session) IsDarkMode() bool { return s.state.IsDarkMode }

// Probing reports whether an availability probe is outstanding.
func (s *Session) Probing() bool { return s.probing }

// Messages returns a copy of the transcript.
func (s *Session) Messages() []*model.Message { return s.conv.Messages() }

// Conversation exposes the transcript for read-only consumers such as export.
func (s *Session) Conversation() *model.Conversation { return s.conv }

// Greeting returns the text a cleared conversation starts with.
func (s *Session) Greeting() string { return s.greeting }

// Now returns the session clock's current time.
func (s *Session) Now() time.Time { return s.now() }

// =============================================================================
// AVAILABILITY PROBE
// =============================================================================

// BeginProbe marks a probe as outstanding and returns the question to ask.
func (s *Session) BeginProbe() string {
	s.probing = true
	return s.probeQuestion
}

// ApplyProbe folds a probe outcome into the status machine.
// Any error, whatever its kind, counts as a failed probe.
func (s *Session) ApplyProbe(err error) APIStatus {
	s.probing = false
	if err != nil {
		s.state.APIStatus = Next(s.state.APIStatus, ProbeFailed)
	} else {
		s.state.APIStatus = Next(s.state.APIStatus, ProbeSucceeded)
	}
	return s.state.APIStatus
}

// =============================================================================
// SEND
// =============================================================================

// BeginSend validates the draft and, if it can be sent, appends the user
// message, clears the draft, raises IsTyping and returns the request.
func (s *Session) BeginSend() (*Request, error) {
	raw := s.state.Draft
	text := strings.TrimSpace(raw)

	switch {
	case text == "":
		return nil, ErrEmptyDraft
	case s.state.IsTyping:
		return nil, ErrSendInFlight
	case s.state.APIStatus == StatusUnavailable:
		return nil, ErrBackendUnavailable
	}

	history := s.conv.History()
	history = append(history, backend.NewUserTurn(raw))

	s.conv.Append(model.NewUserMessage(norm.NFC.String(text), s.now()))
	s.state.Draft = ""
	s.state.IsTyping = true

	return &Request{Question: raw, History: history}, nil
}

// CompleteSend folds a send outcome into the conversation. On success the
// answer is appended; on failure a fixed apology flagged as an error is.
// IsTyping is cleared in both cases.
func (s *Session) CompleteSend(answer string, err error) error {
	if !s.state.IsTyping {
		return ErrNoSendPending
	}

	if err != nil {
		s.conv.Append(model.NewErrorMessage(ErrorReply, s.now()))
		s.state.APIStatus = Next(s.state.APIStatus, SendFailed)
	} else {
		s.conv.Append(model.NewBotMessage(answer, s.now()))
		s.state.APIStatus = Next(s.state.APIStatus, SendSucceeded)
	}
	s.state.IsTyping = false
	return nil
}

// =============================================================================
// GATES
// =============================================================================

// CanSend reports whether BeginSend would succeed.
func (s *Session) CanSend() bool {
	return strings.TrimSpace(s.state.Draft) != "" &&
		s.state.APIStatus != StatusUnavailable &&
		!s.state.IsTyping
}

// ComposerEnabled reports whether the composer accepts input.
func (s *Session) ComposerEnabled() bool {
	return s.state.APIStatus != StatusUnavailable
}

// ShowRetryBanner reports whether the offline banner is visible.
func (s *Session) ShowRetryBanner() bool {
	return s.state.APIStatus == StatusUnavailable
}

// =============================================================================
// UI ACTIONS
// =============================================================================

// ClearChat resets the transcript to the greeting and closes the menu.
// A pending reply still lands in the new conversation.
func (s *Session) ClearChat() {
	s.reset()
	s.state.ShowOptionsMenu = false
}

func (s *Session) reset() {
	if s.oneShot {
		s.conv.Clear()
		return
	}
	s.conv.Reset(s.greeting, s.now())
}

// ToggleTheme flips dark mode and closes the menu.
func (s *Session) ToggleTheme() {
	s.state.IsDarkMode = !s.state.IsDarkMode
	s.state.ShowOptionsMenu = false
}

// SetDarkMode sets the theme without touching the menu.
func (s *Session) SetDarkMode(dark bool) {
	s.state.IsDarkMode = dark
}

// InsertEmoji appends e to the draft and closes the picker.
func (s *Session) InsertEmoji(e string) {
	s.state.Draft += e
	s.state.ShowEmojiPicker = false
}

// SetDraft replaces the composer text.
func (s *Session) SetDraft(d string) {
	s.state.Draft = d
}

// ToggleEmojiPicker opens or closes the emoji picker.
func (s *Session) ToggleEmojiPicker() {
	s.state.ShowEmojiPicker = !s.state.ShowEmojiPicker
}

// CloseEmojiPicker closes the emoji picker.
func (s *Session) CloseEmojiPicker() {
	s.state.ShowEmojiPicker = false
}

// ToggleOptionsMenu opens or closes the options menu.
func (s *Session) ToggleOptionsMenu() {
	s.state.ShowOptionsMenu = !s.state.ShowOptionsMenu
}

// CloseOptionsMenu closes the options menu.
func (s *Session) CloseOptionsMenu() {
	s.state.ShowOptionsMenu = false
}
