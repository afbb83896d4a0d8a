// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the chat view state shared by the TUI and the REPL.
//
// A Session owns the conversation, the composer draft, the UI flags and
// the backend availability state machine. It performs no I/O: network
// calls are split at their suspension point into a Begin step that
// mutates state and returns what to send, and a Complete/Apply step that
// folds the result back in.
//
// # Key Types
//
//   - Session: conversation plus UiState, driven by one event loop
//   - APIStatus: Available, Unavailable or Error
//   - Event: the four inputs to the status transition function
//
// # Usage
//
//	s := session.New(session.WithGreeting(cfg.UI.Greeting))
//	s.SetDraft("hello")
//	req, err := s.BeginSend()
//	if err != nil {
//	    return
//	}
//	resp, err := client.Ask(ctx, req.Question, req.History)
//	s.CompleteSend(answerOf(resp), err)
//
// A Session is not safe for concurrent use.
package session
