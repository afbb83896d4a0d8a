// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/jeranaias/llamachat/internal/backend"
	"github.com/jeranaias/llamachat/internal/config"
	"github.com/jeranaias/llamachat/internal/logging"
)

// annotationLogFile marks commands that own the terminal and so log to
// the log file instead of stderr.
const annotationLogFile = "log-to-file"

// App holds the global flags and the state PersistentPreRunE builds.
type App struct {
	// Flags
	configPath string
	url        string
	theme      string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the llamachat command tree.
func NewRootCmd() *cobra.Command {
	a := &App{}

	root := &cobra.Command{
		Use:   "llamachat",
		Short: "Terminal chat client for a Llama2 ask endpoint",
		Long: `llamachat is a terminal chat client for a question-answering backend.

It sends each question with the whole conversation to POST /ask and shows
the answers as chat bubbles, grouped by day.

Run without arguments to start the full-screen chat.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{annotationLogFile: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.llamachat/config.toml)")
	root.PersistentFlags().StringVar(&a.url, "url", "", "Backend base URL (overrides config and LLAMACHAT_BACKEND_URL)")
	root.PersistentFlags().StringVar(&a.theme, "theme", "", "Color theme: dark, light or auto")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(a.newAskCmd())
	root.AddCommand(a.newStatusCmd())
	root.AddCommand(a.newChatCmd())
	root.AddCommand(a.newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		return 1
	}
	return 0
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads .env and config, applies flags, and builds the logger.
func (a *App) setup(cmd *cobra.Command) error {
	config.LoadDotEnv()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := a.applyFlags(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	opts := logging.Options{Level: cfg.Log.Level, Verbose: a.verbose}
	if cmd.Annotations[annotationLogFile] == "true" {
		path, err := cfg.LogFile()
		if err != nil {
			return err
		}
		opts.File = path
	}
	logger, err := logging.New(opts)
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("cmd", cmd.Name()))
	a.logger.Debug("config loaded",
		zap.String("backend", cfg.Backend.URL),
		zap.String("theme", cfg.UI.Theme))
	return nil
}

// applyFlags lays the command-line overrides over cfg and revalidates.
func (a *App) applyFlags(cfg *config.Config) error {
	if a.url != "" {
		cfg.Backend.URL = a.url
	}
	if a.theme != "" {
		cfg.UI.Theme = strings.ToLower(a.theme)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// newClient builds a backend client from the loaded config.
func (a *App) newClient() *backend.Client {
	return backend.NewClientWithConfig(a.cfg.Backend.ClientConfig(a.logger))
}

// resolvedConfigPath is the file the watcher and Settings entry refer to.
func (a *App) resolvedConfigPath() string {
	if a.configPath != "" {
		return a.configPath
	}
	p, err := config.ConfigPath()
	if err != nil {
		return ""
	}
	return p
}

// =============================================================================
// TERMINAL HELPERS
// =============================================================================

// isTerminal reports whether w is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or fallback when unknown.
func terminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
