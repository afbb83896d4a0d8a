// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/llamachat/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	return &MarkdownExporter{options: opts.withDefaults()}
}

// Export renders front matter, a title, and one section per calendar day.
func (e *MarkdownExporter) Export(t *Transcript) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	title := t.Title
	if strings.TrimSpace(title) == "" {
		title = "Chat"
	}

	var sb strings.Builder

	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: %s\n", escapeYAML(title))
	fmt.Fprintf(&sb, "exported: %s\n", t.ExportedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "messages: %d\n", len(t.Messages))
	sb.WriteString("generator: llamachat\n")
	sb.WriteString("---\n\n")

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(title))

	for _, bucket := range model.GroupByDate(t.Messages, t.ExportedAt, e.options.DateFormat) {
		fmt.Fprintf(&sb, "## %s\n\n", bucket.Label)

		for i, msg := range bucket.Messages {
			if needsHeading(bucket, i) {
				sb.WriteString(e.formatSenderLabel(msg))
			}
			sb.WriteString(formatMessageText(msg))
			sb.WriteString("\n\n")
			if e.options.IncludeTimestamps {
				fmt.Fprintf(&sb, "<sub>%s</sub>\n\n", msg.Timestamp.Format(e.options.TimeFormat))
			}
		}
	}

	sb.WriteString("---\n\n")
	fmt.Fprintf(&sb, "*Exported from llamachat on %s*\n",
		t.ExportedAt.Format("January 2, 2006 at 3:04 PM"))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// needsHeading reports whether message i opens a sender section. Error
// replies always carry their warning heading, and the reply after one
// starts a fresh section.
func needsHeading(b model.Bucket, i int) bool {
	if b.ShowAvatar(i) || b.Messages[i].IsError {
		return true
	}
	return i > 0 && b.Messages[i-1].IsError
}

func (e *MarkdownExporter) formatSenderLabel(msg *model.Message) string {
	if msg.IsError {
		return "### ⚠️ " + msg.Sender.DisplayName() + "\n\n"
	}
	return "### " + msg.Sender.DisplayName() + "\n\n"
}

// formatMessageText keeps bot Markdown as is and quotes error replies.
func formatMessageText(msg *model.Message) string {
	text := strings.TrimSpace(msg.Text)
	if !msg.IsError {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes characters that would break a heading.
func escapeMarkdown(s string) string {
	r := strings.NewReplacer("#", "\\#", "*", "\\*", "_", "\\_", "[", "\\[", "]", "\\]")
	return r.Replace(s)
}

// escapeYAML quotes values that YAML would otherwise misread.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		r := strings.NewReplacer("\\", "\\\\", "\"", "\\\"", "\n", "\\n", "\r", "\\r")
		return "\"" + r.Replace(s) + "\""
	}
	return s
}
