// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session builds the admin session manager.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// DefaultLifetime is used when no positive lifetime is configured.
const DefaultLifetime = 24 * time.Hour

// New creates a new session manager configured with SQLite store.
// Sessions live in the "sessions" table created by the migrations.
func New(db *sql.DB, isDev bool, lifetime time.Duration) *scs.SessionManager {
	sm := scs.New()

	// Use SQLite store
	sm.Store = sqlite3store.New(db)

	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	sm.Lifetime = lifetime
	sm.Cookie.Name = "session"
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	// The __Host- prefix pins the cookie to this exact host over HTTPS.
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}

// StopCleanup stops the background expiry sweep of the SQLite store, if any.
func StopCleanup(sm *scs.SessionManager) {
	if s, ok := sm.Store.(*sqlite3store.SQLite3Store); ok {
		s.StopCleanup()
	}
}
