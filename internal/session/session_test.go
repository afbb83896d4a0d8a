// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/llamachat/internal/backend"
	"github.com/jeranaias/llamachat/internal/model"
)

var fixedNow = time.Date(2024, time.March, 10, 14, 30, 0, 0, time.Local)

func newTestSession(opts ...Option) *Session {
	return New(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNew_Defaults(t *testing.T) {
	s := newTestSession()

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, DefaultGreeting, msgs[0].Text)
	assert.Equal(t, model.SenderBot, msgs[0].Sender)
	assert.Equal(t, fixedNow, msgs[0].Timestamp)

	st := s.State()
	assert.Equal(t, StatusAvailable, st.APIStatus)
	assert.True(t, st.IsDarkMode)
	assert.False(t, st.IsTyping)
	assert.Empty(t, st.Draft)
}

func TestNew_Options(t *testing.T) {
	s := newTestSession(WithGreeting("Hello"), WithDarkMode(false), WithProbeQuestion("health"))
	assert.Equal(t, "Hello", s.Messages()[0].Text)
	assert.False(t, s.IsDarkMode())
	assert.Equal(t, "health", s.BeginProbe())
}

func TestWithGreeting_BlankKeepsDefault(t *testing.T) {
	s := newTestSession(WithGreeting("   "))
	assert.Equal(t, DefaultGreeting, s.Greeting())
}

func TestWithoutGreeting(t *testing.T) {
	s := newTestSession(WithoutGreeting())
	assert.Empty(t, s.Messages())

	s.SetDraft("capital of France?")
	req, err := s.BeginSend()
	require.NoError(t, err)
	assert.Equal(t, []backend.Turn{backend.NewUserTurn("capital of France?")}, req.History)

	s.ClearChat()
	assert.Empty(t, s.Messages())
}

// =============================================================================
// PROBE
// =============================================================================

func TestProbe(t *testing.T) {
	s := newTestSession()

	assert.Equal(t, DefaultProbeQuestion, s.BeginProbe())
	assert.True(t, s.Probing())

	assert.Equal(t, StatusUnavailable, s.ApplyProbe(errors.New("refused")))
	assert.False(t, s.Probing())
	assert.True(t, s.ShowRetryBanner())
	assert.False(t, s.ComposerEnabled())

	s.BeginProbe()
	assert.Equal(t, StatusAvailable, s.ApplyProbe(nil))
	assert.False(t, s.ShowRetryBanner())
	assert.True(t, s.ComposerEnabled())
}

// =============================================================================
// SEND
// =============================================================================

func TestBeginSend_Success(t *testing.T) {
	s := newTestSession()
	s.SetDraft("  hello  ")

	req, err := s.BeginSend()
	require.NoError(t, err)

	assert.Equal(t, "  hello  ", req.Question, "question is the raw draft")
	assert.Equal(t, []backend.Turn{
		{Role: "assistant", Content: DefaultGreeting},
		{Role: "user", Content: "  hello  "},
	}, req.History)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[1].Text, "stored text is trimmed")
	assert.Equal(t, model.SenderUser, msgs[1].Sender)

	assert.Empty(t, s.Draft())
	assert.True(t, s.IsTyping())
	assert.False(t, s.CanSend())
}

func TestBeginSend_NormalizesStoredText(t *testing.T) {
	s := newTestSession()
	s.SetDraft("cafe\u0301")

	_, err := s.BeginSend()
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", s.Conversation().Last().Text)
}

func TestBeginSend_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Session)
		want  error
	}{
		{
			name:  "empty draft",
			setup: func(s *Session) { s.SetDraft("") },
			want:  ErrEmptyDraft,
		},
		{
			name:  "whitespace draft",
			setup: func(s *Session) { s.SetDraft(" \n\t ") },
			want:  ErrEmptyDraft,
		},
		{
			name: "send in flight",
			setup: func(s *Session) {
				s.SetDraft("one")
				_, _ = s.BeginSend()
				s.SetDraft("two")
			},
			want: ErrSendInFlight,
		},
		{
			name: "backend unavailable",
			setup: func(s *Session) {
				s.ApplyProbe(errors.New("down"))
				s.SetDraft("hi")
			},
			want: ErrBackendUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession()
			tc.setup(s)
			before := len(s.Messages())
			draft := s.Draft()

			req, err := s.BeginSend()
			assert.Nil(t, req)
			assert.ErrorIs(t, err, tc.want)
			assert.Len(t, s.Messages(), before, "rejected send must not append")
			assert.Equal(t, draft, s.Draft(), "rejected send must keep the draft")
		})
	}
}

func TestCompleteSend_Success(t *testing.T) {
	s := newTestSession()
	s.ApplyProbe(nil)
	s.SetDraft("hi")
	_, err := s.BeginSend()
	require.NoError(t, err)

	require.NoError(t, s.CompleteSend("Hello human", nil))

	last := s.Conversation().Last()
	assert.Equal(t, "Hello human", last.Text)
	assert.Equal(t, model.SenderBot, last.Sender)
	assert.False(t, last.IsError)
	assert.False(t, s.IsTyping())
	assert.Equal(t, StatusAvailable, s.Status())
}

func TestCompleteSend_Failure(t *testing.T) {
	s := newTestSession()
	s.SetDraft("hi")
	_, err := s.BeginSend()
	require.NoError(t, err)

	require.NoError(t, s.CompleteSend("", errors.New("boom")))

	last := s.Conversation().Last()
	assert.Equal(t, ErrorReply, last.Text)
	assert.True(t, last.IsError)
	assert.False(t, s.IsTyping())
	assert.Equal(t, StatusError, s.Status())
	assert.Equal(t, "Connecting...", s.Status().Label())

	// Error status still allows sending.
	s.SetDraft("again")
	assert.True(t, s.CanSend())
	assert.True(t, s.ComposerEnabled())
	assert.False(t, s.ShowRetryBanner())
}

func TestCompleteSend_NoPending(t *testing.T) {
	s := newTestSession()
	assert.ErrorIs(t, s.CompleteSend("x", nil), ErrNoSendPending)
	assert.Len(t, s.Messages(), 1)
}

func TestSend_HistoryIncludesErrorReplies(t *testing.T) {
	s := newTestSession()
	s.SetDraft("first")
	_, _ = s.BeginSend()
	_ = s.CompleteSend("", errors.New("down"))

	s.SetDraft("second")
	req, err := s.BeginSend()
	require.NoError(t, err)
	require.Len(t, req.History, 4)
	assert.Equal(t, backend.Turn{Role: "assistant", Content: ErrorReply}, req.History[2])
	assert.Equal(t, backend.Turn{Role: "user", Content: "second"}, req.History[3])
}

// =============================================================================
// UI ACTIONS
// =============================================================================

func TestClearChat(t *testing.T) {
	s := newTestSession()
	s.SetDraft("hi")
	_, _ = s.BeginSend()
	_ = s.CompleteSend("yo", nil)
	s.ToggleOptionsMenu()

	s.ClearChat()

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, DefaultGreeting, msgs[0].Text)
	assert.False(t, s.State().ShowOptionsMenu)
}

func TestClearChat_PendingReplyLandsInNewConversation(t *testing.T) {
	s := newTestSession()
	s.SetDraft("hi")
	_, _ = s.BeginSend()

	s.ClearChat()
	require.NoError(t, s.CompleteSend("late answer", nil))

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "late answer", msgs[1].Text)
}

func TestToggleTheme(t *testing.T) {
	s := newTestSession()
	s.ToggleOptionsMenu()

	s.ToggleTheme()
	assert.False(t, s.IsDarkMode())
	assert.False(t, s.State().ShowOptionsMenu)

	s.ToggleTheme()
	assert.True(t, s.IsDarkMode())
}

func TestInsertEmoji(t *testing.T) {
	s := newTestSession()
	s.SetDraft("nice ")
	s.ToggleEmojiPicker()
	require.True(t, s.State().ShowEmojiPicker)

	s.InsertEmoji(Emojis[2])

	assert.Equal(t, "nice 🎉", s.Draft())
	assert.False(t, s.State().ShowEmojiPicker)
}

func TestFlagToggles(t *testing.T) {
	s := newTestSession()

	s.ToggleEmojiPicker()
	assert.True(t, s.State().ShowEmojiPicker)
	s.CloseEmojiPicker()
	assert.False(t, s.State().ShowEmojiPicker)

	s.ToggleOptionsMenu()
	assert.True(t, s.State().ShowOptionsMenu)
	s.ToggleOptionsMenu()
	assert.False(t, s.State().ShowOptionsMenu)
	s.ToggleOptionsMenu()
	s.CloseOptionsMenu()
	assert.False(t, s.State().ShowOptionsMenu)
}

func TestEmojis(t *testing.T) {
	assert.Len(t, Emojis, 12)
	assert.Equal(t, "😊", Emojis[0])
	assert.Equal(t, "🌟", Emojis[11])
}
