// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/llamachat/internal/backend"
	"github.com/jeranaias/llamachat/internal/export"
	"github.com/jeranaias/llamachat/internal/session"
)

// noticeDuration is how long a footer notice stays visible.
var noticeDuration = 4 * time.Second

var errNoClient = errors.New("no backend client configured")

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// probeCmd runs one Ping. The client pointer is captured so a config reload
// mid-flight does not change which backend answers.
func probeCmd(client *backend.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return ProbeResultMsg{Err: errNoClient}
		}
		return ProbeResultMsg{Err: client.Ping(context.Background())}
	}
}

// askCmd sends one question with its history. There is no cancellation;
// the client's own timeout, if any, bounds the wait.
func askCmd(client *backend.Client, req *session.Request) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return AskResultMsg{Err: errNoClient}
		}
		resp, err := client.Ask(context.Background(), req.Question, req.History)
		if err != nil {
			return AskResultMsg{Err: err}
		}
		return AskResultMsg{Answer: resp.Answer}
	}
}

// saveCmd writes the transcript in format.
func saveCmd(t *export.Transcript, format string, opts *export.Options) tea.Cmd {
	return func() tea.Msg {
		path, err := export.Export(t, format, opts)
		return SaveResultMsg{Path: path, Err: err}
	}
}

// copyCmd puts text on the system clipboard.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return CopyResultMsg{Err: err}
		}
		return CopyResultMsg{Chars: len([]rune(text))}
	}
}

// clearNoticeCmd schedules removal of notice seq.
func clearNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}
