// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/llamachat/internal/session"
	"github.com/jeranaias/llamachat/internal/ui/styles"
)

// askResult is the --json output of ask.
type askResult struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (a *App) newAskCmd() *cobra.Command {
	var (
		raw      bool
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask a single question",
		Long: `Ask sends one question with no prior conversation and prints the answer.

Answers are rendered as Markdown when stdout is a terminal.`,
		Example: `  llamachat ask "What is the capital of France?"
  llamachat ask --json "Summarize LangChain in one line"
  llamachat ask --url http://gpu-box:5000 hello`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")

			sess := session.New(session.WithoutGreeting())
			sess.SetDraft(question)
			req, err := sess.BeginSend()
			if err != nil {
				if errors.Is(err, session.ErrEmptyDraft) {
					return errors.New("question is empty")
				}
				return err
			}

			client := a.newClient()
			a.logger.Debug("asking", zap.String("endpoint", client.Endpoint()))
			resp, err := client.Ask(cmd.Context(), req.Question, req.History)
			if err != nil {
				return fmt.Errorf("ask failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonMode {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(askResult{Question: question, Answer: resp.Answer})
			}
			if !raw && isTerminal(out) {
				if rendered, err := renderMarkdown(resp.Answer, a.cfg.UI.Theme, terminalWidth(out, 80)); err == nil {
					fmt.Fprint(out, rendered)
					return nil
				}
			}
			fmt.Fprintln(out, resp.Answer)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the answer without Markdown rendering")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Print question and answer as JSON")
	return cmd
}

// renderMarkdown renders text with the glamour style matching theme.
func renderMarkdown(text, theme string, width int) (string, error) {
	style := "dark"
	if !styles.ResolveDark(theme) {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}
