// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/ciphercorp-site/internal/auth"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyAdmin       ContextKey = "admin"
	ContextKeyRequestPath ContextKey = "request_path"
)

// LoadAdmin puts the signed-in admin, if any, into the request context.
// It must run after the session manager's LoadAndSave.
func LoadAdmin(a *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin, err := a.Authenticate(r)
			if err != nil {
				if !errors.Is(err, auth.ErrUnauthenticated) {
					slog.Error("failed to load admin", "error", err, "path", r.URL.Path)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin redirects to loginPath unless LoadAdmin found an admin.
func RequireAdmin(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetAdmin(r); !ok {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetAdmin retrieves the signed-in admin from the request context.
func GetAdmin(r *http.Request) (auth.Identity, bool) {
	admin, ok := r.Context().Value(ContextKeyAdmin).(auth.Identity)
	return admin, ok
}

// RequestPath stores the request path in context for templates.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from context.
func GetRequestPath(ctx context.Context) string {
	if path, ok := ctx.Value(ContextKeyRequestPath).(string); ok {
		return path
	}
	return ""
}
