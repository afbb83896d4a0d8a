// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears every override variable.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, k := range []string{
		"LLAMACHAT_BACKEND_URL", "LLAMACHAT_REQUEST_TIMEOUT", "LLAMACHAT_THEME",
		"LLAMACHAT_LOG_LEVEL", "LLAMACHAT_LOG_FILE", "LLAMACHAT_EXPORT_DIR",
		"LLAMACHAT_EXPORT_FORMAT",
	} {
		t.Setenv(k, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
	assert.Equal(t, "/ask", cfg.Backend.AskPath)
	assert.Equal(t, "ping", cfg.Backend.ProbeQuestion)
	assert.Zero(t, cfg.Backend.RequestTimeoutSecs)
	assert.True(t, cfg.Backend.ProbeOnStart)
	assert.Equal(t, ThemeDark, cfg.UI.Theme)
	assert.Equal(t, 5, cfg.UI.MaxComposerLines)
	assert.Equal(t, "03:04 PM", cfg.UI.TimeFormat)
	assert.Equal(t, "1/2/2006", cfg.UI.DateFormat)
	assert.True(t, cfg.UI.RenderMarkdown)
	assert.Equal(t, "markdown", cfg.Export.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// =============================================================================
// PRECEDENCE
// =============================================================================

func TestLoad_FileOverridesDefaults(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".llamachat", "config.toml"), `
[backend]
url = "http://chat.internal:8080"
probe_on_start = false

[ui]
theme = "Light"
max_composer_lines = 8
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://chat.internal:8080", cfg.Backend.URL)
	assert.False(t, cfg.Backend.ProbeOnStart)
	assert.Equal(t, ThemeLight, cfg.UI.Theme, "theme is normalized to lowercase")
	assert.Equal(t, 8, cfg.UI.MaxComposerLines)
	// Untouched keys keep their defaults.
	assert.Equal(t, "/ask", cfg.Backend.AskPath)
	assert.True(t, cfg.UI.RenderMarkdown)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, `
[backend]
url = "http://from-file:5000"
[log]
level = "warn"
`)
	t.Setenv("LLAMACHAT_BACKEND_URL", "http://from-env:5000")
	t.Setenv("LLAMACHAT_THEME", "auto")
	t.Setenv("LLAMACHAT_REQUEST_TIMEOUT", "30")
	t.Setenv("LLAMACHAT_EXPORT_DIR", "/tmp/exports")
	t.Setenv("LLAMACHAT_EXPORT_FORMAT", "JSON")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:5000", cfg.Backend.URL)
	assert.Equal(t, ThemeAuto, cfg.UI.Theme)
	assert.Equal(t, 30*time.Second, cfg.Backend.RequestTimeout())
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/exports", cfg.Export.Dir)
	assert.Equal(t, "json", cfg.Export.Format)
}

func TestLoad_MalformedTOML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, "[backend\nurl = ")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".llamachat", ".env"),
		"LLAMACHAT_LOG_LEVEL=debug\nLLAMACHAT_THEME=light\n")
	t.Setenv("LLAMACHAT_THEME", "dark")
	// An empty value counts as set for godotenv, so drop it entirely.
	require.NoError(t, os.Unsetenv("LLAMACHAT_LOG_LEVEL"))
	t.Cleanup(func() { os.Unsetenv("LLAMACHAT_LOG_LEVEL") })

	loaded := LoadDotEnv()
	assert.Contains(t, loaded, filepath.Join(home, ".llamachat", ".env"))
	assert.Equal(t, "debug", os.Getenv("LLAMACHAT_LOG_LEVEL"))
	assert.Equal(t, "dark", os.Getenv("LLAMACHAT_THEME"))
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"bad url scheme", func(c *Config) { c.Backend.URL = "ftp://x" }, "backend.url"},
		{"url without host", func(c *Config) { c.Backend.URL = "localhost" }, "backend.url"},
		{"negative timeout", func(c *Config) { c.Backend.RequestTimeoutSecs = -1 }, "backend.request_timeout_secs"},
		{"bad theme", func(c *Config) { c.UI.Theme = "sepia" }, "ui.theme"},
		{"composer too tall", func(c *Config) { c.UI.MaxComposerLines = 50 }, "ui.max_composer_lines"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad export format", func(c *Config) { c.Export.Format = "html" }, "export.format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "sepia"
	cfg.Log.Level = "loud"

	var verrs ValidateErrors
	require.True(t, errors.As(cfg.Validate(), &verrs))
	assert.Len(t, verrs, 2)
	assert.Contains(t, verrs.Error(), "ui.theme")
	assert.Contains(t, verrs.Error(), "log.level")
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

func TestResolvedPaths(t *testing.T) {
	home := isolate(t)
	cfg := Default()

	logFile, err := cfg.LogFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".llamachat", "llamachat.log"), logFile)

	dir, err := cfg.ExportDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".llamachat", "exports"), dir)

	cfg.Export.Dir = "~/chats"
	dir, err = cfg.ExportDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "chats"), dir)
}

func TestClientConfig(t *testing.T) {
	cfg := Default()
	cfg.Backend.RequestTimeoutSecs = 12

	cc := cfg.Backend.ClientConfig(nil)
	assert.Equal(t, cfg.Backend.URL, cc.BaseURL)
	assert.Equal(t, "/ask", cc.AskPath)
	assert.Equal(t, "ping", cc.ProbeQuestion)
	assert.Equal(t, 12*time.Second, cc.Timeout)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.UI.AssistantName = "Helper"
	cfg.Backend.ProbeOnStart = false
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatch_ReloadsOnWrite(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui]\ntheme = \"dark\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	require.NoError(t, Watch(ctx, path, func(cfg *Config, err error) {
		if err == nil {
			got <- cfg
		}
	}))

	writeFile(t, path, "[ui]\ntheme = \"light\"\n")

	select {
	case cfg := <-got:
		assert.Equal(t, ThemeLight, cfg.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}
