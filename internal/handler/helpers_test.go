// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ciphercorp-site/internal/auth"
	"github.com/olegiv/ciphercorp-site/internal/cache"
	"github.com/olegiv/ciphercorp-site/internal/content"
	"github.com/olegiv/ciphercorp-site/internal/middleware"
	"github.com/olegiv/ciphercorp-site/internal/render"
	"github.com/olegiv/ciphercorp-site/internal/testutil"
	"github.com/olegiv/ciphercorp-site/internal/version"
	"github.com/olegiv/ciphercorp-site/web"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct horse battery staple"
)

// testApp wires the HTML handlers to the embedded templates and a
// migrated temporary database.
type testApp struct {
	db       *sql.DB
	sessions *scs.SessionManager
	projects *content.Projects
	team     *content.Team
	router   http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })

	sm := scs.New()
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates fs: %v", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sm,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	a := auth.NewAuthenticator(db, sm)
	projects := content.NewProjects(db, c, time.Minute)
	team := content.NewTeam(db, c, time.Minute)

	publicH := NewPublicHandler(projects, team, renderer)
	authH := NewAuthHandler(a, renderer)
	adminH := NewAdminHandler(projects, team, renderer)
	healthH := NewHealthHandler(db, a, c, t.TempDir(), version.Info{Version: "1.2.3", GitCommit: "abc123"})

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(middleware.RequestPath)
	r.Use(middleware.LoadAdmin(a))
	r.NotFound(publicH.NotFound)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Get(RouteRoot, publicH.Home)
	r.Get(RouteAbout, publicH.About)
	r.Get(RouteProjects, publicH.Projects)
	r.Get(RouteProjects+RouteParamID, publicH.Project)
	r.Get(RouteTeam, publicH.Team)
	r.Get(RouteTeam+RouteParamID, publicH.Member)

	r.Route(RouteAdmin, func(r chi.Router) {
		r.Get(RouteLogin, authH.LoginForm)
		r.Post(RouteLogin, authH.Login)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(redirectAdminLogin))
			r.Post(RouteLogout, authH.Logout)
			adminH.Routes(r)
		})
	})

	return &testApp{db: db, sessions: sm, projects: projects, team: team, router: r}
}

// do sends a request. A non-nil form is sent as the urlencoded body, and
// a non-empty token is attached as the session cookie.
func (a *testApp) do(t *testing.T, method, path string, form url.Values, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: a.sessions.Cookie.Name, Value: token})
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// createAdmin stores the test admin account.
func (a *testApp) createAdmin(t *testing.T) {
	t.Helper()
	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	testutil.CreateAdmin(t, a.db, testAdminEmail, hash)
}

// login creates the test admin, signs in through the form and returns the
// session token.
func (a *testApp) login(t *testing.T) string {
	t.Helper()
	a.createAdmin(t)

	w := a.do(t, http.MethodPost, redirectAdminLogin, url.Values{
		"email":    {testAdminEmail},
		"password": {testAdminPassword},
	}, "")
	assertRedirect(t, w, redirectAdmin)

	token := sessionCookie(w, a.sessions.Cookie.Name)
	if token == "" {
		t.Fatal("login did not set a session cookie")
	}
	return token
}

// follow requests the page a redirect points to with the same session,
// so a pending flash message is rendered.
func (a *testApp) follow(t *testing.T, w *httptest.ResponseRecorder, token string) *httptest.ResponseRecorder {
	t.Helper()
	if next := sessionCookie(w, a.sessions.Cookie.Name); next != "" {
		token = next
	}
	return a.do(t, http.MethodGet, w.Header().Get("Location"), nil, token)
}

func sessionCookie(w *httptest.ResponseRecorder, name string) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == name && c.MaxAge >= 0 {
			return c.Value
		}
	}
	return ""
}

func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("expected status %d, got %d (body: %s)", expected, w.Code, w.Body.String())
	}
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusSeeOther, w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Location = %q, want %q", got, location)
	}
}

func assertBodyContains(t *testing.T, w *httptest.ResponseRecorder, substrings ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range substrings {
		if !strings.Contains(body, s) {
			t.Errorf("body does not contain %q", s)
		}
	}
}

func assertBodyNotContains(t *testing.T, w *httptest.ResponseRecorder, substrings ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range substrings {
		if strings.Contains(body, s) {
			t.Errorf("body unexpectedly contains %q", s)
		}
	}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}
