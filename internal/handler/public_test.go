// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/olegiv/ciphercorp-site/internal/content"
	"github.com/olegiv/ciphercorp-site/internal/store"
)

func createProject(t *testing.T, app *testApp, in content.NewProject) store.Project {
	t.Helper()
	p, err := app.projects.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("creating project: %v", err)
	}
	return p
}

func createMember(t *testing.T, app *testApp, in content.NewTeamMember) store.TeamMember {
	t.Helper()
	m, err := app.team.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("creating team member: %v", err)
	}
	return m
}

func TestHome_Empty(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/", nil, "")

	assertStatusCode(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	assertBodyContains(t, w, "Cipher Corp", "Projects are on their way.")
}

func TestHome_FeaturesFirstProjects(t *testing.T) {
	app := newTestApp(t)
	for i := 1; i <= 4; i++ {
		createProject(t, app, content.NewProject{
			Title:       fmt.Sprintf("Project %d", i),
			Description: "Description",
		})
	}
	createMember(t, app, content.NewTeamMember{Name: "Ada Lovelace", Role: "Founder"})

	w := app.do(t, http.MethodGet, "/", nil, "")

	assertStatusCode(t, w, http.StatusOK)
	assertBodyContains(t, w, "Project 1", "Project 2", "Project 3", "All 4 projects", "Ada Lovelace")
	assertBodyNotContains(t, w, "Project 4")
}

func TestAbout_ListsTeam(t *testing.T) {
	app := newTestApp(t)
	createMember(t, app, content.NewTeamMember{Name: "Grace Hopper", Role: "Engineer"})

	w := app.do(t, http.MethodGet, "/about", nil, "")

	assertStatusCode(t, w, http.StatusOK)
	assertBodyContains(t, w, "About Cipher Corp", "Grace Hopper", "Engineer")
}

func TestProjects_ListInOrder(t *testing.T) {
	app := newTestApp(t)
	createProject(t, app, content.NewProject{Title: "First", Description: "d", Tags: "go, security"})
	createProject(t, app, content.NewProject{Title: "Second", Description: "d"})

	w := app.do(t, http.MethodGet, "/projects", nil, "")

	assertStatusCode(t, w, http.StatusOK)
	body := w.Body.String()
	first, second := strings.Index(body, "First"), strings.Index(body, "Second")
	if first < 0 || second < 0 || first > second {
		t.Errorf("projects not listed in order: First at %d, Second at %d", first, second)
	}
	assertBodyContains(t, w, "<li>go</li>", "<li>security</li>")
}

func TestProject_RendersSanitizedMarkdown(t *testing.T) {
	app := newTestApp(t)
	p := createProject(t, app, content.NewProject{
		Title:       "Vault",
		Description: "Secret storage",
		Content:     "Some **bold** text\n\n<script>alert(1)</script>",
	})

	w := app.do(t, http.MethodGet, "/projects/"+p.ID, nil, "")

	assertStatusCode(t, w, http.StatusOK)
	assertBodyContains(t, w, "Vault", "Secret storage", "<strong>bold</strong>")
	assertBodyNotContains(t, w, "<script>alert(1)</script>")
}

func TestProject_NotFound(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		path string
	}{
		{name: "malformed id", path: "/projects/not-a-uuid"},
		{name: "unknown id", path: "/projects/" + uuid.NewString()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, http.MethodGet, tt.path, nil, "")
			assertStatusCode(t, w, http.StatusNotFound)
			assertBodyContains(t, w, "Page not found")
		})
	}
}

func TestProject_DeletedIsNotFound(t *testing.T) {
	app := newTestApp(t)
	p := createProject(t, app, content.NewProject{Title: "Gone", Description: "d"})
	if err := app.projects.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	w := app.do(t, http.MethodGet, "/projects/"+p.ID, nil, "")
	assertStatusCode(t, w, http.StatusNotFound)
}

func TestTeamAndMember(t *testing.T) {
	app := newTestApp(t)
	m := createMember(t, app, content.NewTeamMember{
		Name:     "Alan Turing",
		Role:     "Cryptanalyst",
		Bio:      "Broke *Enigma*.",
		Linkedin: "https://linkedin.com/in/alan",
		Email:    "alan@example.com",
	})

	w := app.do(t, http.MethodGet, "/team", nil, "")
	assertStatusCode(t, w, http.StatusOK)
	assertBodyContains(t, w, "Alan Turing", "/team/"+m.ID)

	w = app.do(t, http.MethodGet, "/team/"+m.ID, nil, "")
	assertStatusCode(t, w, http.StatusOK)
	assertBodyContains(t, w, "Cryptanalyst", "<em>Enigma</em>", "mailto:alan@example.com", "https://linkedin.com/in/alan")

	w = app.do(t, http.MethodGet, "/team/"+uuid.NewString(), nil, "")
	assertStatusCode(t, w, http.StatusNotFound)
}

func TestNotFound_UnknownRoute(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/no/such/page", nil, "")

	assertStatusCode(t, w, http.StatusNotFound)
	assertBodyContains(t, w, "Page not found")
}

func TestPublicNav_ShowsAdminLinkWhenSignedIn(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/", nil, "")
	assertBodyNotContains(t, w, `href="/admin"`)

	token := app.login(t)
	w = app.do(t, http.MethodGet, "/", nil, token)
	assertBodyContains(t, w, `href="/admin"`)
}
