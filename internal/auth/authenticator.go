// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ciphercorp-site/internal/store"
)

// SessionKeyAdminID is the session key holding the logged-in admin's id.
const SessionKeyAdminID = "admin_id"

var (
	// ErrInvalidCredentials is returned for every failed login, whether the
	// email is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated is returned when a request carries no valid admin session.
	ErrUnauthenticated = errors.New("not authenticated")
)

// Identity is the admin a request acts as.
type Identity struct {
	AdminID string `json:"id"`
	Email   string `json:"email"`
}

// Session is the result of a successful login.
type Session struct {
	Identity  Identity
	Token     string
	ExpiresAt time.Time
}

// Authenticator verifies admin credentials and manages the admin session.
type Authenticator struct {
	queries  *store.Queries
	sessions *scs.SessionManager
}

// NewAuthenticator creates an Authenticator backed by db and the session manager.
func NewAuthenticator(db store.DBTX, sm *scs.SessionManager) *Authenticator {
	return &Authenticator{
		queries:  store.New(db),
		sessions: sm,
	}
}

// Sessions returns the session manager used for admin sessions.
func (a *Authenticator) Sessions() *scs.SessionManager {
	return a.sessions
}

// Login checks email and password and binds the session in ctx to the admin.
// ctx must carry session data loaded by the session manager's middleware.
func (a *Authenticator) Login(ctx context.Context, email, password string) (Session, error) {
	admin, err := a.queries.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			equalizeFailedCheck(password)
			slog.Debug("login failed", "reason", "unknown email")
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("looking up admin: %w", err)
	}

	valid, err := CheckPassword(password, admin.PasswordHash)
	if err != nil {
		// CheckPassword returns before hashing when the stored hash is bad.
		equalizeFailedCheck(password)
		slog.Warn("stored password hash rejected", "admin_id", admin.ID, "error", err)
		return Session{}, ErrInvalidCredentials
	}
	if !valid {
		slog.Debug("login failed", "reason", "wrong password", "admin_id", admin.ID)
		return Session{}, ErrInvalidCredentials
	}

	if NeedsRehash(admin.PasswordHash) {
		a.rehash(ctx, admin.ID, password)
	}

	// Renew the token to prevent session fixation.
	if err := a.sessions.RenewToken(ctx); err != nil {
		return Session{}, fmt.Errorf("renewing session token: %w", err)
	}
	a.sessions.Put(ctx, SessionKeyAdminID, admin.ID)

	token, expiry, err := a.sessions.Commit(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("committing session: %w", err)
	}

	slog.Info("admin logged in", "admin_id", admin.ID, "email", admin.Email)

	return Session{
		Identity:  Identity{AdminID: admin.ID, Email: admin.Email},
		Token:     token,
		ExpiresAt: expiry,
	}, nil
}

func (a *Authenticator) rehash(ctx context.Context, adminID, password string) {
	hash, err := HashPassword(password)
	if err != nil {
		slog.Warn("rehashing password failed", "admin_id", adminID, "error", err)
		return
	}
	_, err = a.queries.UpdateAdminPassword(ctx, store.UpdateAdminPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    time.Now().UTC(),
		ID:           adminID,
	})
	if err != nil {
		slog.Warn("storing rehashed password failed", "admin_id", adminID, "error", err)
		return
	}
	slog.Info("upgraded password hash cost", "admin_id", adminID, "cost", BcryptCost)
}

// Authenticate returns the admin bound to the request's session.
// The admin is reloaded so a deleted account stops authenticating at once.
func (a *Authenticator) Authenticate(r *http.Request) (Identity, error) {
	adminID := a.sessionAdminID(r.Context())
	if adminID == "" {
		return Identity{}, ErrUnauthenticated
	}

	admin, err := a.queries.GetAdminByID(r.Context(), adminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Identity{}, ErrUnauthenticated
		}
		return Identity{}, fmt.Errorf("loading session admin: %w", err)
	}

	return Identity{AdminID: admin.ID, Email: admin.Email}, nil
}

// sessionAdminID reads the admin id, treating a context without loaded
// session data as anonymous. scs panics in that case.
func (a *Authenticator) sessionAdminID(ctx context.Context) (id string) {
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	return a.sessions.GetString(ctx, SessionKeyAdminID)
}

// Logout destroys the session in ctx. The token is removed from the store,
// so it is rejected on its next use.
func (a *Authenticator) Logout(ctx context.Context) error {
	if err := a.sessions.Destroy(ctx); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}
