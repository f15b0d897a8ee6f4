// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdownEngine = goldmark.New(goldmark.WithExtensions(extension.GFM))

	// Project content is written by admins but still treated as untrusted.
	htmlSanitizer = bluemonday.UGCPolicy()
)

// Markdown converts Markdown source to sanitized HTML.
func Markdown(src string) template.HTML {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(src), &buf); err != nil {
		slog.Warn("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(src))
	}

	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes()))
}
