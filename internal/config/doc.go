// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for llamachat.
//
// # Key Types
//
//   - Config: main configuration structure
//   - BackendConfig: where the ask endpoint lives and how it is probed
//   - UIConfig: theme, branding strings and composer limits
//   - LogConfig, ExportConfig: log sink and transcript directory
//
// # Configuration Precedence
//
// Values are resolved in this order, later entries winning:
//   - Built-in defaults
//   - ~/.llamachat/config.toml (or the --config path)
//   - Environment variables (LLAMACHAT_*), including ones from a .env file
//   - Command-line flags
//
// # Usage
//
//	config.LoadDotEnv()
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := backend.NewClientWithConfig(cfg.Backend.ClientConfig(logger))
package config
