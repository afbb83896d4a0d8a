// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the llamachat command tree.
//
// # Commands
//
//   - llamachat: full-screen chat (needs a terminal)
//   - ask QUESTION: one question, answer printed to stdout
//   - status: one availability probe
//   - chat: line-mode chat with history and slash commands
//   - config show|path|init: inspect or create the config file
//   - version: build information
//
// # Global Flags
//
//	--config PATH   config file (default ~/.llamachat/config.toml)
//	--url URL       backend base URL, overrides config and environment
//	--theme NAME    dark, light or auto
//	-v, --verbose   debug logging
//
// Settings are resolved file, then environment, then flags.
package cli
