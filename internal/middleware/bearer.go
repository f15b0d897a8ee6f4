// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
)

// BearerSession lets API clients present the session token as
// "Authorization: Bearer <token>" instead of the session cookie. It must
// run before the session manager's LoadAndSave. A cookie, when present,
// wins.
func BearerSession(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			if _, err := r.Cookie(sm.Cookie.Name); err == nil {
				next.ServeHTTP(w, r)
				return
			}

			r = r.Clone(r.Context())
			r.AddCookie(&http.Cookie{Name: sm.Cookie.Name, Value: token})
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
