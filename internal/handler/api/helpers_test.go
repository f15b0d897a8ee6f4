// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ciphercorp-site/internal/auth"
	"github.com/olegiv/ciphercorp-site/internal/cache"
	"github.com/olegiv/ciphercorp-site/internal/content"
	"github.com/olegiv/ciphercorp-site/internal/testutil"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct horse battery staple"
)

// testEnv is an API mounted at /api behind session middleware, backed by
// a migrated temporary database.
type testEnv struct {
	db       *sql.DB
	sessions *scs.SessionManager
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })

	sm := scs.New()
	h := NewHandler(
		auth.NewAuthenticator(db, sm),
		content.NewProjects(db, c, time.Minute),
		content.NewTeam(db, c, time.Minute),
	)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Route("/api", h.Routes)

	return &testEnv{db: db, sessions: sm, router: r}
}

// do sends a request. A non-empty token is attached as the session cookie.
func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: e.sessions.Cookie.Name, Value: token})
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// createAdmin stores the test admin account.
func (e *testEnv) createAdmin(t *testing.T) {
	t.Helper()
	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	testutil.CreateAdmin(t, e.db, testAdminEmail, hash)
}

// login creates the test admin, signs in and returns the session token.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	e.createAdmin(t)

	w := e.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"`+testAdminEmail+`","password":"`+testAdminPassword+`"}`, "")
	assertStatusCode(t, w, http.StatusOK)

	resp := decodeBody[LoginResponse](t, w)
	if resp.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return resp.Token
}

// assertStatusCode checks that the response has the expected status code.
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("expected status %d, got %d (body: %s)", expected, w.Code, w.Body.String())
	}
}

// assertErrorResponse unmarshals and validates an error response.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error.Code != expectedCode {
		t.Errorf("expected code '%s', got %s", expectedCode, resp.Error.Code)
	}
	return resp
}

// decodeBody unmarshals a JSON response body into T.
func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to unmarshal response: %v (body: %s)", err, w.Body.String())
	}
	return v
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}
