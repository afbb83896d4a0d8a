// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the render helpers the chat view is built from.

# Display Components

Header (header.go) - assistant name, status dot and label, menu hint.
Banner (banner.go) - the offline alert with its Retry action.
Message (message.go) - avatars, date pills and chat bubbles.
ActionBar (actionbar.go) - New Chat, Save Chat and Check API.

# Overlays

OptionsMenu (menu.go) - theme toggle, clear, check connection, save, settings.
EmojiPicker (emoji.go) - a 6-column glyph grid driven by the arrow keys.

Overlays keep only their cursor. Whether they are open lives in the
session, so the REPL and the TUI agree on it.
*/
package components
