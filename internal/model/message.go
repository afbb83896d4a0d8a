// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/llamachat/internal/backend"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// Role maps the sender to the backend history role.
// Anything that is not the user is the assistant.
func (s Sender) Role() string {
	if s == SenderUser {
		return backend.RoleUser
	}
	return backend.RoleAssistant
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in the transcript. Messages are never edited
// after creation.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`

	// IsError marks a bot message standing in for a failed request.
	IsError bool `json:"is_error,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(sender Sender, text string, at time.Time) *Message {
	return &Message{
		ID:        generateID(),
		Text:      text,
		Sender:    sender,
		Timestamp: at,
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(text string, at time.Time) *Message {
	return NewMessage(SenderUser, text, at)
}

// NewBotMessage creates a new bot message.
func NewBotMessage(text string, at time.Time) *Message {
	return NewMessage(SenderBot, text, at)
}

// NewErrorMessage creates a bot message flagged as an error.
func NewErrorMessage(text string, at time.Time) *Message {
	msg := NewMessage(SenderBot, text, at)
	msg.IsError = true
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// IsUser reports whether the message was written by the user.
func (m *Message) IsUser() bool {
	return m.Sender == SenderUser
}

// Turn converts the message to a backend history entry.
func (m *Message) Turn() backend.Turn {
	return backend.Turn{Role: m.Sender.Role(), Content: m.Text}
}

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPERS
// =============================================================================

// generateID returns a UUIDv7 so IDs sort in creation order. Falls back
// to a random v4 if the v7 generator fails.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
