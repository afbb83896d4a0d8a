// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// llamachat is a terminal chat client for a Llama2 question-answering
// backend. See internal/cli for the command tree.
package main

import (
	"os"

	"github.com/jeranaias/llamachat/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
