// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across llamachat.
//
// # Key Functions
//
// Display width (terminal cells, via go-runewidth):
//   - StringWidth: cell width of a string
//   - TruncateWidth: cut to a cell width with an ellipsis
//   - WrapLines: soft-wrap text the way a fixed-width input box does
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - AtomicWrite: same, streaming through an io.Writer
package util
