// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/llamachat/internal/backend"
	"github.com/jeranaias/llamachat/internal/config"
	"github.com/jeranaias/llamachat/internal/export"
	"github.com/jeranaias/llamachat/internal/model"
	"github.com/jeranaias/llamachat/internal/session"
	"github.com/jeranaias/llamachat/internal/ui/styles"
)

// errUnknownCommand is returned for slash commands the REPL does not know.
var errUnknownCommand = errors.New("unknown command")

const replHelp = `Commands:
  /clear    start a new chat
  /status   check the backend
  /save     save the chat (export.format: markdown or json)
  /help     show this help
  /quit     leave (also /exit, Ctrl+D)`

func (a *App) newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Line-mode chat with input history",
		Long: `Chat runs the conversation in plain lines instead of the full-screen UI.
Input history is kept in ~/.llamachat/chat_history.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLogFile: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.newREPL(cmd.OutOrStdout())

			in := newLineReader()
			defer in.Close()

			fmt.Fprintln(r.out, welcomeStyle.Render(a.cfg.UI.AssistantName))
			fmt.Fprintln(r.out, infoStyle.Render("Type /help for commands. Ctrl+D to quit."))
			r.printLast()
			r.probe(cmd.Context())

			for {
				line, err := in.ReadInput("you> ")
				if err != nil {
					// Ctrl+C, Ctrl+D and closed stdin all end the chat.
					fmt.Fprintln(r.out)
					return nil
				}
				more, err := r.handle(cmd.Context(), line)
				if err != nil {
					fmt.Fprintf(r.out, "%s %v\n", errorStyle.Render("[Error]"), err)
				}
				if !more {
					return nil
				}
			}
		},
	}
}

// =============================================================================
// REPL
// =============================================================================

// repl is the line-mode chat loop minus terminal input.
type repl struct {
	sess      *session.Session
	client    *backend.Client
	cfg       *config.Config
	logger    *zap.Logger
	out       io.Writer
	exportDir string
}

func (a *App) newREPL(out io.Writer) *repl {
	r := &repl{
		sess: session.New(
			session.WithGreeting(a.cfg.UI.Greeting),
			session.WithDarkMode(styles.ResolveDark(a.cfg.UI.Theme)),
			session.WithProbeQuestion(a.cfg.Backend.ProbeQuestion),
		),
		client: a.newClient(),
		cfg:    a.cfg,
		logger: a.logger,
		out:    out,
	}
	if dir, err := a.cfg.ExportDir(); err == nil {
		r.exportDir = dir
	}
	return r
}

// handle processes one input line. It returns false when the user asked to
// leave.
func (r *repl) handle(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return true, nil
	}
	if strings.HasPrefix(line, "/") {
		return r.command(ctx, line)
	}

	r.sess.SetDraft(line)
	req, err := r.sess.BeginSend()
	if err != nil {
		if errors.Is(err, session.ErrBackendUnavailable) {
			fmt.Fprintln(r.out, infoStyle.Render("Backend is offline. Use /status to retry."))
			return true, nil
		}
		return true, err
	}

	resp, askErr := r.client.Ask(ctx, req.Question, req.History)
	answer := ""
	if askErr == nil {
		answer = resp.Answer
	} else {
		r.logger.Warn("ask failed", zap.Error(askErr))
	}
	if err := r.sess.CompleteSend(answer, askErr); err != nil {
		return true, err
	}
	r.printLast()
	return true, nil
}

func (r *repl) command(ctx context.Context, line string) (bool, error) {
	name := strings.ToLower(strings.Fields(line)[0])
	switch name {
	case "/quit", "/exit":
		return false, nil
	case "/help":
		fmt.Fprintln(r.out, replHelp)
	case "/clear":
		r.sess.ClearChat()
		fmt.Fprintln(r.out, infoStyle.Render("Started a new chat"))
		r.printLast()
	case "/status":
		r.probe(ctx)
	case "/save":
		t := export.NewTranscript(r.cfg.UI.AssistantName, r.sess.Messages(), r.sess.Now())
		path, err := export.Export(t, r.cfg.Export.Format, &export.Options{
			OutputDir:         r.exportDir,
			IncludeTimestamps: true,
			TimeFormat:        r.cfg.UI.TimeFormat,
			DateFormat:        r.cfg.UI.DateFormat,
		})
		if err != nil {
			return true, fmt.Errorf("save failed: %w", err)
		}
		fmt.Fprintln(r.out, infoStyle.Render("Saved to "+path))
	default:
		return true, fmt.Errorf("%w: %s (try /help)", errUnknownCommand, name)
	}
	return true, nil
}

// probe checks the backend and prints the resulting status.
func (r *repl) probe(ctx context.Context) {
	r.sess.BeginProbe()
	err := r.client.Ping(ctx)
	status := r.sess.ApplyProbe(err)
	if err != nil {
		r.logger.Debug("probe failed", zap.Error(err))
	}
	style := statusStyle(status == session.StatusAvailable, status == session.StatusUnavailable)
	fmt.Fprintf(r.out, "%s %s\n", style.Render(styles.StatusDot+" "+status.Label()), infoStyle.Render(r.client.Endpoint()))
}

// printLast prints the newest message with its sender label.
func (r *repl) printLast() {
	msg := r.sess.Conversation().Last()
	if msg == nil {
		return
	}
	switch {
	case msg.IsError:
		fmt.Fprintf(r.out, "%s %s\n", errorStyle.Render(r.cfg.UI.AssistantName+":"), msg.Text)
	case msg.Sender == model.SenderBot:
		fmt.Fprintf(r.out, "%s %s\n", botLabelStyle.Render(r.cfg.UI.AssistantName+":"), msg.Text)
	default:
		fmt.Fprintf(r.out, "%s %s\n", promptStyle.Render("you>"), msg.Text)
	}
}

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader wraps liner with a persistent history file.
type lineReader struct {
	line        *liner.State
	historyFile string
}

func newLineReader() *lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	r := &lineReader{line: line, historyFile: filepath.Join(dir, "chat_history")}
	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	return r
}

// ReadInput prompts for a line and records it in history.
func (r *lineReader) ReadInput(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history with owner-only permissions and restores the terminal.
func (r *lineReader) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}
