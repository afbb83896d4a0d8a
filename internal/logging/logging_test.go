// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "llamachat.log")

	logger, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)

	logger.Debug("probe succeeded", zap.String("endpoint", "http://localhost:5000/ask"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "probe succeeded", entry["msg"])
	assert.Equal(t, "http://localhost:5000/ask", entry["endpoint"])
	assert.Contains(t, entry, "ts")
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		enabled zapcore.Level
		blocked zapcore.Level
	}{
		{"default is info", Options{}, zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", Options{Level: "warn"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{"verbose wins", Options{Level: "error", Verbose: true}, zapcore.DebugLevel, zapcore.Level(-2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.File = filepath.Join(t.TempDir(), "x.log")
			logger, err := New(tc.opts)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tc.enabled))
			assert.False(t, logger.Core().Enabled(tc.blocked))
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "shouty"})
	assert.Error(t, err)
}
