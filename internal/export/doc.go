// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to files ("Save Chat").
//
// Exports are one-way: nothing in llamachat ever reads them back.
//
// # Formats
//
//   - Markdown: front matter plus one section per day, for reading
//   - JSON: the raw message list, for tooling
//
// # Usage
//
//	t := export.NewTranscript("Llama2 Assistant", sess.Messages(), time.Now())
//	path, err := export.Export(t, export.FormatMarkdown, &export.Options{OutputDir: dir})
package export
