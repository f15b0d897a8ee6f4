// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging builds the site logger. Its handler wraps another
// slog.Handler and blanks out attributes that may carry credentials.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Redacted replaces the value of every sensitive attribute.
const Redacted = "[REDACTED]"

// DefaultSensitiveKeys are redacted by NewRedactHandler.
var DefaultSensitiveKeys = []string{"password", "password_hash", "token", "secret"}

// RedactHandler is a slog.Handler that wraps another handler and replaces
// the values of sensitive attributes before they reach it.
type RedactHandler struct {
	inner slog.Handler
	keys  map[string]struct{}
}

// NewRedactHandler wraps inner and redacts DefaultSensitiveKeys.
func NewRedactHandler(inner slog.Handler) *RedactHandler {
	return NewRedactHandlerWithKeys(inner, DefaultSensitiveKeys...)
}

// NewRedactHandlerWithKeys wraps inner and redacts the given keys.
// Keys match case-insensitively.
func NewRedactHandlerWithKeys(inner slog.Handler, keys ...string) *RedactHandler {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[strings.ToLower(k)] = struct{}{}
	}
	return &RedactHandler{inner: inner, keys: set}
}

// Enabled implements slog.Handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(h.redact(a))
		return true
	})
	return h.inner.Handle(ctx, clean)
}

// WithAttrs implements slog.Handler.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = h.redact(a)
	}
	return &RedactHandler{
		inner: h.inner.WithAttrs(clean),
		keys:  h.keys,
	}
}

// WithGroup implements slog.Handler.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{
		inner: h.inner.WithGroup(name),
		keys:  h.keys,
	}
}

func (h *RedactHandler) redact(a slog.Attr) slog.Attr {
	if _, ok := h.keys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, Redacted)
	}

	v := a.Value.Resolve()
	if v.Kind() != slog.KindGroup {
		return slog.Attr{Key: a.Key, Value: v}
	}

	group := v.Group()
	clean := make([]any, len(group))
	for i, ga := range group {
		clean[i] = h.redact(ga)
	}
	return slog.Group(a.Key, clean...)
}

// ParseLevel maps a config level name to a slog.Level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text logger writing to w at the named level,
// with credential redaction applied.
func NewLogger(w io.Writer, level string) *slog.Logger {
	inner := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(NewRedactHandler(inner))
}
