// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/ciphercorp-site/internal/auth"
	"github.com/olegiv/ciphercorp-site/internal/middleware"
	"github.com/olegiv/ciphercorp-site/internal/render"
)

// msgInvalidCredentials is shown for every failed login, whatever the cause.
const msgInvalidCredentials = "Invalid email or password"

// AuthHandler handles the admin login form and logout.
type AuthHandler struct {
	auth     *auth.Authenticator
	renderer *render.Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(a *auth.Authenticator, renderer *render.Renderer) *AuthHandler {
	return &AuthHandler{
		auth:     a,
		renderer: renderer,
	}
}

// LoginData is the data for the login template.
type LoginData struct {
	Email string
}

// LoginForm renders the login page. Signed-in admins go to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetAdmin(r); ok {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	renderPage(w, r, h.renderer, http.StatusOK, tmplLogin, render.TemplateData{
		Title: "Sign in",
		Data:  LoginData{},
	})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminLogin) {
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.loginFailed(w, r, email, "Email and password are required")
		return
	}

	if _, err := h.auth.Login(r.Context(), email, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.loginFailed(w, r, email, msgInvalidCredentials)
			return
		}
		slog.Error("login failed", "error", err)
		h.loginFailed(w, r, email, "Sign in is unavailable, please try again")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdmin, "Signed in")
}

// loginFailed re-renders the form with the email kept and the password dropped.
func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, email, message string) {
	renderPage(w, r, h.renderer, http.StatusUnauthorized, tmplLogin, render.TemplateData{
		Title:     "Sign in",
		Data:      LoginData{Email: email},
		Flash:     message,
		FlashType: flashTypeError,
	})
}

// Logout handles POST /admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if admin, ok := middleware.GetAdmin(r); ok {
		slog.Info("admin logged out", "admin_id", admin.AdminID)
	}

	if err := h.auth.Logout(r.Context()); err != nil {
		logAndInternalError(w, "logout failed", "error", err)
		return
	}

	// The old session is gone; the flash lands in a fresh one.
	flashSuccess(w, r, h.renderer, redirectAdminLogin, "Signed out")
}
