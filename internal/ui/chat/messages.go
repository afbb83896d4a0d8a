// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/llamachat/internal/config"
)

// =============================================================================
// BACKEND MESSAGES
// =============================================================================

// ProbeResultMsg reports the outcome of one availability probe.
type ProbeResultMsg struct {
	Err error
}

// AskResultMsg carries the reply to a send, or its failure.
type AskResultMsg struct {
	Answer string
	Err    error
}

// =============================================================================
// ACTION MESSAGES
// =============================================================================

// SaveResultMsg reports where Save Chat wrote the transcript.
type SaveResultMsg struct {
	Path string
	Err  error
}

// CopyResultMsg reports a clipboard copy.
type CopyResultMsg struct {
	Chars int
	Err   error
}

// ConfigReloadedMsg is sent by the config watcher after the file changes.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// clearNoticeMsg hides the footer notice identified by seq.
type clearNoticeMsg struct {
	seq int
}
