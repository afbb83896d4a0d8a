// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/llamachat/internal/model"
	"github.com/jeranaias/llamachat/internal/util"
)

// ErrEmptyTranscript is returned when there is nothing to export.
var ErrEmptyTranscript = errors.New("transcript has no messages")

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is a snapshot of a conversation taken for export.
type Transcript struct {
	Title      string           `json:"title"`
	ExportedAt time.Time        `json:"exported_at"`
	Messages   []*model.Message `json:"messages"`
}

// NewTranscript snapshots msgs. The slice is copied.
func NewTranscript(title string, msgs []*model.Message, now time.Time) *Transcript {
	cp := make([]*model.Message, len(msgs))
	copy(cp, msgs)
	return &Transcript{Title: title, ExportedAt: now, Messages: cp}
}

func (t *Transcript) validate() error {
	if t == nil || len(t.Messages) == 0 {
		return ErrEmptyTranscript
	}
	return nil
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders a transcript in one file format.
type Exporter interface {
	// Export converts a transcript to the target format.
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the file extension including the dot.
	FileExtension() string
}

// Format names accepted by Export.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is where files are written. Default: current directory.
	OutputDir string

	// IncludeTimestamps adds the time under each message (Markdown only).
	IncludeTimestamps bool

	// TimeFormat and DateFormat are Go layouts for message times and
	// day headings.
	TimeFormat string
	DateFormat string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeTimestamps: true,
		TimeFormat:        "03:04 PM",
		DateFormat:        model.DefaultDateLayout,
	}
}

func (o *Options) withDefaults() *Options {
	d := DefaultOptions()
	if o == nil {
		return d
	}
	out := *o
	if out.OutputDir == "" {
		out.OutputDir = d.OutputDir
	}
	if out.TimeFormat == "" {
		out.TimeFormat = d.TimeFormat
	}
	if out.DateFormat == "" {
		out.DateFormat = d.DateFormat
	}
	return &out
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders t with exporter and writes it to
// <OutputDir>/chat_<timestamp><ext>. Returns the path written.
func ExportToFile(t *Transcript, exporter Exporter, opts *Options) (string, error) {
	opts = opts.withDefaults()

	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := uniquePath(opts.OutputDir, FileName(t.ExportedAt, ""), exporter.FileExtension())
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// NewExporter returns the exporter for format. An empty format means
// Markdown.
func NewExporter(format string, opts *Options) (Exporter, error) {
	switch format {
	case FormatMarkdown, "":
		return NewMarkdownExporter(opts), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// Export writes t in format and returns the path written.
func Export(t *Transcript, format string, opts *Options) (string, error) {
	exporter, err := NewExporter(format, opts)
	if err != nil {
		return "", err
	}
	return ExportToFile(t, exporter, opts)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// FileName returns the base name of an export taken at ts, without
// directory. ext may be empty.
func FileName(ts time.Time, ext string) string {
	return "chat_" + ts.Format("20060102_150405") + ext
}

// uniquePath returns dir/base+ext, or dir/base-N+ext if that name is taken.
func uniquePath(dir, base, ext string) string {
	p := filepath.Join(dir, base+ext)
	for n := 2; ; n++ {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			return p
		}
		p = filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, n, ext))
	}
}
