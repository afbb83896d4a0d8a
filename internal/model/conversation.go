// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/jeranaias/llamachat/internal/backend"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the ordered transcript of a chat.
//
// Messages can only be appended; Reset is the only way to remove them.
// A Conversation is not safe for concurrent use.
type Conversation struct {
	messages []*Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{messages: make([]*Message, 0)}
}

// NewConversationWithGreeting creates a conversation holding a single bot
// greeting.
func NewConversationWithGreeting(greeting string, now time.Time) *Conversation {
	c := NewConversation()
	c.Reset(greeting, now)
	return c
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the end of the conversation.
// Nil messages are ignored.
func (c *Conversation) Append(msg *Message) {
	if msg == nil {
		return
	}
	c.messages = append(c.messages, msg)
}

// Reset replaces the whole transcript with a single bot greeting.
func (c *Conversation) Reset(greeting string, now time.Time) {
	c.messages = []*Message{NewBotMessage(greeting, now)}
}

// Clear removes every message.
func (c *Conversation) Clear() {
	c.messages = make([]*Message, 0)
}

// Messages returns a copy of the message slice in order.
func (c *Conversation) Messages() []*Message {
	out := make([]*Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message, or nil if empty.
func (c *Conversation) Last() *Message {
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

// LastFrom returns the most recent message from sender, or nil.
func (c *Conversation) LastFrom(sender Sender) *Message {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Sender == sender {
			return c.messages[i]
		}
	}
	return nil
}

// =============================================================================
// BACKEND HISTORY
// =============================================================================

// History maps every message, greeting and error replies included, to the
// role/content pairs the backend expects.
func (c *Conversation) History() []backend.Turn {
	turns := make([]backend.Turn, 0, len(c.messages))
	for _, m := range c.messages {
		turns = append(turns, m.Turn())
	}
	return turns
}
