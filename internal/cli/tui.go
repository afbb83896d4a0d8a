// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/llamachat/internal/config"
	"github.com/jeranaias/llamachat/internal/session"
	"github.com/jeranaias/llamachat/internal/ui/chat"
	"github.com/jeranaias/llamachat/internal/ui/styles"
)

// errNoTerminal is returned when the full-screen chat is started without a
// terminal on stdin and stdout.
var errNoTerminal = errors.New("llamachat needs a terminal; use 'llamachat ask' or 'llamachat chat' instead")

// runTUI starts the full-screen chat and watches the config file for edits.
func (a *App) runTUI(cmd *cobra.Command) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNoTerminal
	}

	cfg := a.cfg
	sess := session.New(
		session.WithGreeting(cfg.UI.Greeting),
		session.WithDarkMode(styles.ResolveDark(cfg.UI.Theme)),
		session.WithProbeQuestion(cfg.Backend.ProbeQuestion),
	)
	path := a.resolvedConfigPath()

	m := chat.New(chat.Options{
		Config:     cfg,
		Session:    sess,
		Client:     a.newClient(),
		Logger:     a.logger,
		ConfigPath: path,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := config.EnsureConfigDir(); err != nil {
		a.logger.Warn("config directory unavailable", zap.Error(err))
	}
	err := config.Watch(ctx, path, func(next *config.Config, err error) {
		if err == nil {
			err = a.applyFlags(next)
		}
		if err != nil {
			next = nil
		}
		p.Send(chat.ConfigReloadedMsg{Config: next, Err: err})
	})
	if err != nil {
		a.logger.Warn("config watch disabled", zap.String("path", path), zap.Error(err))
	}

	a.logger.Info("starting chat",
		zap.String("endpoint", cfg.Backend.URL+cfg.Backend.AskPath),
		zap.String("theme", cfg.UI.Theme))

	if _, err := p.Run(); err != nil {
		return err
	}
	a.logger.Info("chat closed", zap.Int("messages", sess.Conversation().Len()))
	return nil
}
