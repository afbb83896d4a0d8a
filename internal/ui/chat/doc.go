// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view for the llamachat TUI.

The chat package implements the terminal chat screen using the Bubble Tea
framework. All conversation state lives in a session.Session; this package
renders it and turns keystrokes and backend results into session calls.

# Key Components

## Model (model.go)

The Model struct is the Bubble Tea model. It owns:
  - the session (messages, draft, typing flag, APIStatus)
  - the composer textarea, sized to its content
  - the transcript viewport, kept scrolled to the newest message
  - the spinner shown while a reply is pending

## Update Loop (update.go)

Keyboard handling, overlay navigation (options menu, emoji picker) and the
results of the probe and ask commands.

## Commands (commands.go)

tea.Cmd constructors for the network calls, Save Chat and clipboard copy.
Each command only returns a message; none of them touch the session.

## View Rendering (view.go)

Header, retry banner, transcript grouped by day, typing indicator, emoji
picker, composer, footer and action bar.

# Usage

	sess := session.New(session.WithGreeting(cfg.UI.Greeting))
	m := chat.New(chat.Options{
		Config:  cfg,
		Session: sess,
		Client:  backend.NewClientWithConfig(cfg.Backend.ClientConfig(logger)),
		Logger:  logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
*/
package chat
