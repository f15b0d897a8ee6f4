// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ciphercorp-site/internal/auth"
	"github.com/olegiv/ciphercorp-site/internal/middleware"
)

func testTemplates() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": {Data: []byte(
			`{{define "base"}}<title>{{.Title}}</title>{{template "flash" .}}{{block "layout" .}}{{template "content" .}}{{end}}{{end}}`)},
		"layouts/public.html": {Data: []byte(
			`{{define "layout"}}<main class="public">{{template "content" .}}</main>{{end}}`)},
		"layouts/admin.html": {Data: []byte(
			`{{define "layout"}}<main class="admin">{{with .Admin}}{{.Email}}{{end}}|{{template "content" .}}</main>{{end}}`)},
		"partials/flash.html": {Data: []byte(
			`{{define "flash"}}{{if .Flash}}<div class="{{.FlashType}}">{{.Flash}}</div>{{end}}{{end}}`)},
		"public/home.html": {Data: []byte(
			`{{define "content"}}home {{.Data}} {{.RequestPath}}{{end}}`)},
		"public/project.html": {Data: []byte(
			`{{define "content"}}{{markdown .Data}}{{range tagList "a, ,b"}}[{{.}}]{{end}}{{end}}`)},
		"admin/dashboard.html": {Data: []byte(
			`{{define "content"}}dash{{end}}`)},
		"auth/login.html": {Data: []byte(
			`{{define "content"}}login{{end}}`)},
	}
}

func newTestRenderer(t *testing.T, sm *scs.SessionManager) *Renderer {
	t.Helper()
	r, err := New(Config{TemplatesFS: testTemplates(), SessionManager: sm})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestNew_ParsesAllGroups(t *testing.T) {
	r := newTestRenderer(t, nil)

	for _, name := range []string{"public/home", "public/project", "admin/dashboard", "auth/login"} {
		if !r.Has(name) {
			t.Errorf("template %s not parsed", name)
		}
	}
	if r.Has("partials/flash") {
		t.Error("partials should not be pages")
	}
}

func TestNew_ParseError(t *testing.T) {
	fsys := testTemplates()
	fsys["public/broken.html"] = &fstest.MapFile{Data: []byte(`{{define "content"}}{{.Missing`)}

	if _, err := New(Config{TemplatesFS: fsys}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRender_Layouts(t *testing.T) {
	r := newTestRenderer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyRequestPath, "/"))
	rec := httptest.NewRecorder()
	if err := r.Render(rec, req, "public/home", TemplateData{Title: "Home", Data: "<b>x</b>"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `<main class="public">home &lt;b&gt;x&lt;/b&gt; /</main>`) {
		t.Errorf("unexpected body: %s", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	admin := auth.Identity{AdminID: "a-1", Email: "admin@example.com"}
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyAdmin, admin))
	rec = httptest.NewRecorder()
	if err := r.Render(rec, req, "admin/dashboard", TemplateData{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(rec.Body.String(), `<main class="admin">admin@example.com|dash</main>`) {
		t.Errorf("unexpected admin body: %s", rec.Body.String())
	}
}

func TestRenderStatus(t *testing.T) {
	r := newTestRenderer(t, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	if err := r.RenderStatus(rec, req, http.StatusNotFound, "auth/login", TemplateData{}); err != nil {
		t.Fatalf("RenderStatus() error = %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t, nil)

	rec := httptest.NewRecorder()
	err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), "public/nope", TemplateData{})
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
	if rec.Body.Len() != 0 {
		t.Error("nothing should be written for an unknown template")
	}
}

func TestRender_MarkdownAndTags(t *testing.T) {
	r := newTestRenderer(t, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects/x", nil)
	if err := r.Render(rec, req, "public/project", TemplateData{Data: "# Hi\n\n<script>alert(1)</script>"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "Hi</h1>") {
		t.Errorf("markdown heading missing: %s", body)
	}
	if strings.Contains(body, "<script>") {
		t.Errorf("script survived sanitizing: %s", body)
	}
	if !strings.Contains(body, "[a][b]") {
		t.Errorf("tag list missing: %s", body)
	}
}

func TestFlash_RoundTrip(t *testing.T) {
	sm := scs.New()
	r := newTestRenderer(t, sm)

	var token string
	set := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.SetFlash(req, "Project saved", "success")
	}))
	rec := httptest.NewRecorder()
	set.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/projects", nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.Cookie.Name {
			token = c.Value
		}
	}

	show := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = r.Render(w, req, "auth/login", TemplateData{})
	}))

	for i, want := range []bool{true, false} {
		req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
		req.AddCookie(&http.Cookie{Name: sm.Cookie.Name, Value: token})
		rec := httptest.NewRecorder()
		show.ServeHTTP(rec, req)

		got := strings.Contains(rec.Body.String(), `<div class="success">Project saved</div>`)
		if got != want {
			t.Errorf("render %d: flash shown = %v, want %v (body %s)", i, got, want, rec.Body.String())
		}
	}
}

func TestFlash_NoSessionLoaded(t *testing.T) {
	r := newTestRenderer(t, scs.New())

	rec := httptest.NewRecorder()
	if err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), "auth/login", TemplateData{}); err != nil {
		t.Fatalf("Render() without session data error = %v", err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		length int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"hello world", 5, "hello..."},
		{"hello world", 6, "hello..."},
		{"héllo wörld", 4, "héll..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.length); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.length, got, tt.want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	if got := Markdown(""); got != "" {
		t.Errorf("Markdown(\"\") = %q", got)
	}

	got := string(Markdown("**bold** [link](https://example.com) <img src=x onerror=alert(1)>"))
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("bold missing: %s", got)
	}
	if !strings.Contains(got, `href="https://example.com"`) {
		t.Errorf("link missing: %s", got)
	}
	if strings.Contains(got, "onerror") {
		t.Errorf("event handler survived: %s", got)
	}
}
