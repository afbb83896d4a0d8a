// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/llamachat/internal/backend"
	"github.com/jeranaias/llamachat/internal/export"
	"github.com/jeranaias/llamachat/internal/util"
)

// DefaultBackendURL is the backend used when nothing else is configured.
// Override at build time with:
//
//	go build -ldflags "-X github.com/jeranaias/llamachat/internal/config.DefaultBackendURL=http://host:5000"
var DefaultBackendURL = "http://localhost:5000"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete llamachat configuration.
type Config struct {
	Backend BackendConfig `toml:"backend" json:"backend"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Log     LogConfig     `toml:"log" json:"log"`
	Export  ExportConfig  `toml:"export" json:"export"`
}

// BackendConfig describes the ask endpoint.
type BackendConfig struct {
	URL           string `toml:"url" json:"url"`
	AskPath       string `toml:"ask_path" json:"ask_path"`
	ProbeQuestion string `toml:"probe_question" json:"probe_question"`

	// RequestTimeoutSecs bounds each request. 0 waits as long as the
	// backend takes.
	RequestTimeoutSecs int `toml:"request_timeout_secs" json:"request_timeout_secs"`

	// ProbeOnStart runs one availability probe when the UI opens.
	ProbeOnStart bool `toml:"probe_on_start" json:"probe_on_start"`
}

// UIConfig holds display settings.
type UIConfig struct {
	Theme            string `toml:"theme" json:"theme"` // dark, light, auto
	AssistantName    string `toml:"assistant_name" json:"assistant_name"`
	Greeting         string `toml:"greeting" json:"greeting"`
	Footer           string `toml:"footer" json:"footer"`
	RenderMarkdown   bool   `toml:"render_markdown" json:"render_markdown"`
	MaxComposerLines int    `toml:"max_composer_lines" json:"max_composer_lines"`
	TimeFormat       string `toml:"time_format" json:"time_format"`
	DateFormat       string `toml:"date_format" json:"date_format"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `toml:"level" json:"level"` // debug, info, warn, error
	File  string `toml:"file" json:"file"`   // empty means ~/.llamachat/llamachat.log
}

// ExportConfig controls Save Chat.
type ExportConfig struct {
	Dir    string `toml:"dir" json:"dir"`       // empty means ~/.llamachat/exports
	Format string `toml:"format" json:"format"` // markdown or json
}

// Theme names accepted by ui.theme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeAuto  = "auto"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:           DefaultBackendURL,
			AskPath:       "/ask",
			ProbeQuestion: "ping",
			ProbeOnStart:  true,
		},
		UI: UIConfig{
			Theme:            ThemeDark,
			AssistantName:    "Llama2 Assistant",
			Greeting:         "Hey there! 👋 I'm your AI companion powered by Llama2. What's on your mind today?",
			Footer:           "Powered by Flask + LangChain + Ollama",
			RenderMarkdown:   true,
			MaxComposerLines: 5,
			TimeFormat:       "03:04 PM",
			DateFormat:       "1/2/2006",
		},
		Log: LogConfig{
			Level: "info",
		},
		Export: ExportConfig{
			Format: export.FormatMarkdown,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the llamachat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".llamachat"), nil
}

// ConfigPath returns the path to the default TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// LogFile returns the resolved log file path.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return expandHome(c.Log.File), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "llamachat.log"), nil
}

// ExportDir returns the resolved transcript directory.
func (c *Config) ExportDir() (string, error) {
	if c.Export.Dir != "" {
		return expandHome(c.Export.Dir), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exports"), nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads .env from the working directory and then from the config
// directory. Variables already set in the environment are never replaced.
// Returns the files that were loaded.
func LoadDotEnv() []string {
	candidates := []string{".env"}
	if dir, err := ConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}

	var loaded []string
	for _, p := range candidates {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err == nil {
			loaded = append(loaded, p)
		}
	}
	return loaded
}

// Load loads configuration from path, or from ~/.llamachat/config.toml when
// path is empty. A missing default file is not an error; a missing explicit
// path is. Environment overrides are applied after the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// SetDefaults fills empty string and zero numeric fields with defaults.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Backend.URL == "" {
		c.Backend.URL = d.Backend.URL
	}
	if c.Backend.AskPath == "" {
		c.Backend.AskPath = d.Backend.AskPath
	}
	if c.Backend.ProbeQuestion == "" {
		c.Backend.ProbeQuestion = d.Backend.ProbeQuestion
	}

	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	if c.UI.AssistantName == "" {
		c.UI.AssistantName = d.UI.AssistantName
	}
	if strings.TrimSpace(c.UI.Greeting) == "" {
		c.UI.Greeting = d.UI.Greeting
	}
	if c.UI.Footer == "" {
		c.UI.Footer = d.UI.Footer
	}
	if c.UI.MaxComposerLines == 0 {
		c.UI.MaxComposerLines = d.UI.MaxComposerLines
	}
	if c.UI.TimeFormat == "" {
		c.UI.TimeFormat = d.UI.TimeFormat
	}
	if c.UI.DateFormat == "" {
		c.UI.DateFormat = d.UI.DateFormat
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}

	if c.Export.Format == "" {
		c.Export.Format = d.Export.Format
	}
	c.Export.Format = strings.ToLower(c.Export.Format)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes cfg to path atomically, creating parent directories.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# llamachat configuration file\n")
	b.WriteString("# Environment variables (LLAMACHAT_*) override these values.\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Backend.URL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("invalid URL '%s', must be http(s)://host[:port]", c.Backend.URL),
		})
	}
	if c.Backend.RequestTimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "backend.request_timeout_secs",
			Message: "must be >= 0 (0 disables the timeout)",
		})
	}

	switch c.UI.Theme {
	case ThemeDark, ThemeLight, ThemeAuto:
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}
	if c.UI.MaxComposerLines < 1 || c.UI.MaxComposerLines > 20 {
		errs = append(errs, ValidationError{
			Field:   "ui.max_composer_lines",
			Message: fmt.Sprintf("must be between 1 and 20, got %d", c.UI.MaxComposerLines),
		})
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	switch c.Export.Format {
	case export.FormatMarkdown, export.FormatJSON:
	default:
		errs = append(errs, ValidationError{
			Field:   "export.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: markdown, json", c.Export.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//   - LLAMACHAT_BACKEND_URL: overrides backend.url
//   - LLAMACHAT_REQUEST_TIMEOUT: overrides backend.request_timeout_secs
//   - LLAMACHAT_THEME: overrides ui.theme
//   - LLAMACHAT_LOG_LEVEL: overrides log.level
//   - LLAMACHAT_LOG_FILE: overrides log.file
//   - LLAMACHAT_EXPORT_DIR: overrides export.dir
//   - LLAMACHAT_EXPORT_FORMAT: overrides export.format
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("LLAMACHAT_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("LLAMACHAT_REQUEST_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Backend.RequestTimeoutSecs = secs
		}
	}
	if v := os.Getenv("LLAMACHAT_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("LLAMACHAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LLAMACHAT_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("LLAMACHAT_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("LLAMACHAT_EXPORT_FORMAT"); v != "" {
		c.Export.Format = strings.ToLower(v)
	}
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// RequestTimeout returns the per-request timeout. Zero means none.
func (b BackendConfig) RequestTimeout() time.Duration {
	return time.Duration(b.RequestTimeoutSecs) * time.Second
}

// ClientConfig converts the backend section into a client configuration.
func (b BackendConfig) ClientConfig(logger *zap.Logger) *backend.ClientConfig {
	return &backend.ClientConfig{
		BaseURL:       b.URL,
		AskPath:       b.AskPath,
		ProbeQuestion: b.ProbeQuestion,
		Timeout:       b.RequestTimeout(),
		Logger:        logger,
	}
}

// String returns the configuration as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
