// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/llamachat/internal/session"
	"github.com/jeranaias/llamachat/internal/ui/styles"
)

// errOffline is returned by status when the probe fails.
var errOffline = errors.New("backend offline")

func (a *App) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the backend answers",
		Long: `Status sends one probe question to the ask endpoint and reports
Online or Offline. It exits with status 1 when the backend is offline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.newClient()
			sess := session.New(session.WithProbeQuestion(client.ProbeQuestion()))
			sess.BeginProbe()
			probeErr := client.Ping(cmd.Context())
			status := sess.ApplyProbe(probeErr)

			out := cmd.OutOrStdout()
			style := statusStyle(status == session.StatusAvailable, status == session.StatusUnavailable)
			fmt.Fprintf(out, "%s %s  %s\n",
				style.Render(styles.StatusDot),
				style.Render(status.Label()),
				infoStyle.Render(client.Endpoint()))

			if probeErr != nil {
				fmt.Fprintln(out, infoStyle.Render("  "+probeErr.Error()))
				return fmt.Errorf("%w: %s", errOffline, client.Endpoint())
			}
			return nil
		},
	}
}
