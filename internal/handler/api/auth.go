// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olegiv/ciphercorp-site/internal/auth"
)

// LoginResponse is returned by a successful login. The token may be sent
// back as a Bearer credential by clients that do not keep cookies.
type LoginResponse struct {
	Admin     auth.Identity `json:"admin"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

// SessionResponse reports whether the caller is signed in.
type SessionResponse struct {
	Authenticated bool           `json:"authenticated"`
	Admin         *auth.Identity `json:"admin,omitempty"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if errs := req.check(); len(errs) > 0 {
		WriteBadRequest(w, "Invalid login request", errs)
		return
	}

	sess, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			WriteInvalidCredentials(w)
			return
		}
		slog.Error("login failed", "error", err)
		WriteInternalError(w, "Failed to sign in")
		return
	}

	WriteOK(w, LoginResponse{
		Admin:     sess.Identity,
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
	})
}

// check reports shape problems only. Whether the credentials match is
// the authenticator's concern.
func (req LoginRequest) check() map[string]string {
	errs := make(map[string]string)

	switch {
	case req.Email == "":
		errs["email"] = "Email is required"
	case utf8.RuneCountInString(req.Email) > MaxLoginEmailLength:
		errs["email"] = "Email is too long"
	default:
		if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
			errs["email"] = "Email must be a valid address"
		}
	}

	switch {
	case req.Password == "":
		errs["password"] = "Password is required"
	case utf8.RuneCountInString(req.Password) > MaxLoginPasswordLength:
		errs["password"] = "Password is too long"
	}

	return errs
}

// Logout handles POST /api/auth/logout. It succeeds whether or not the
// caller was signed in.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if admin, err := h.auth.Authenticate(r); err == nil {
		slog.Info("admin logged out", "admin_id", admin.AdminID)
	}
	if err := h.auth.Logout(r.Context()); err != nil {
		slog.Error("logout failed", "error", err)
		WriteInternalError(w, "Failed to sign out")
		return
	}
	WriteSuccess(w)
}

// Session handles GET /api/auth/session.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	admin, err := h.auth.Authenticate(r)
	if err != nil {
		if !errors.Is(err, auth.ErrUnauthenticated) {
			slog.Error("reading session failed", "error", err)
		}
		WriteOK(w, SessionResponse{})
		return
	}
	WriteOK(w, SessionResponse{Authenticated: true, Admin: &admin})
}
