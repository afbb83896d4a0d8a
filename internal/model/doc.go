// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Message: a single immutable chat message with sender, text and timestamp
//   - Sender: who wrote a message (user or bot)
//   - Conversation: the ordered, append-only transcript
//   - Bucket: messages grouped by local calendar day for display
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.Append(model.NewUserMessage("Hello!", time.Now()))
//	for _, b := range model.GroupByDate(conv.Messages(), time.Now(), model.DefaultDateLayout) {
//	    fmt.Println(b.Label, len(b.Messages))
//	}
package model
