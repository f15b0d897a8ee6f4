// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ciphercorp-site/internal/content"
	"github.com/olegiv/ciphercorp-site/internal/render"
	"github.com/olegiv/ciphercorp-site/internal/store"
	"github.com/olegiv/ciphercorp-site/internal/util"
)

// AdminHandler serves the admin panel. Every route it registers expects
// middleware.RequireAdmin in front of it.
type AdminHandler struct {
	projects *content.Projects
	team     *content.Team
	renderer *render.Renderer

	projectPages *contentAdmin[store.Project, content.NewProject, content.ProjectPatch]
	teamPages    *contentAdmin[store.TeamMember, content.NewTeamMember, content.TeamMemberPatch]
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(projects *content.Projects, team *content.Team, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{
		projects:     projects,
		team:         team,
		renderer:     renderer,
		projectPages: newProjectPages(projects, renderer),
		teamPages:    newTeamPages(team, renderer),
	}
}

// Routes registers the dashboard and the content pages on r.
func (h *AdminHandler) Routes(r chi.Router) {
	r.Get(RouteRoot, h.Dashboard)
	r.Route(RouteProjects, h.projectPages.routes)
	r.Route(RouteTeam, h.teamPages.routes)
}

// DashboardData is the data for the admin dashboard.
type DashboardData struct {
	ProjectCount int64
	TeamCount    int64
}

// Dashboard handles GET /admin.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	projectCount, err := h.projects.Count(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count projects", "error", err)
		return
	}
	teamCount, err := h.team.Count(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count team members", "error", err)
		return
	}

	renderPage(w, r, h.renderer, http.StatusOK, tmplDashboard, render.TemplateData{
		Title: "Dashboard",
		Data: DashboardData{
			ProjectCount: projectCount,
			TeamCount:    teamCount,
		},
	})
}

func newProjectPages(repo *content.Projects, renderer *render.Renderer) *contentAdmin[store.Project, content.NewProject, content.ProjectPatch] {
	return &contentAdmin[store.Project, content.NewProject, content.ProjectPatch]{
		repo:     repo,
		renderer: renderer,
		label:    "project",
		plural:   "Projects",
		basePath: redirectAdminProjects,
		listTmpl: tmplAdminProjects,
		fields: []FormField{
			{Name: "title", Label: "Title", Type: fieldText, Required: true, MaxLength: content.MaxTitleLength},
			{Name: "description", Label: "Description", Type: fieldTextarea, Required: true, MaxLength: content.MaxDescriptionLength},
			{Name: "content", Label: "Content (Markdown)", Type: fieldMarkdown, MaxLength: content.MaxContentLength},
			{Name: "imageUrl", Label: "Image URL", Type: fieldURL, MaxLength: content.MaxURLLength},
			{Name: "tags", Label: "Tags (comma separated)", Type: fieldText, MaxLength: content.MaxTagsLength},
		},
		toNew: func(v url.Values) content.NewProject {
			return content.NewProject{
				Title:       v.Get("title"),
				Description: v.Get("description"),
				Content:     v.Get("content"),
				ImageURL:    v.Get("imageUrl"),
				Tags:        v.Get("tags"),
			}
		},
		toPatch: func(v url.Values) content.ProjectPatch {
			return content.ProjectPatch{
				Title:       util.Some(v.Get("title")),
				Description: util.Some(v.Get("description")),
				Content:     util.Some(v.Get("content")),
				ImageURL:    util.Some(v.Get("imageUrl")),
				Tags:        util.Some(v.Get("tags")),
			}
		},
		values: func(p store.Project) map[string]string {
			return map[string]string{
				"title":       p.Title,
				"description": p.Description,
				"content":     p.Content,
				"imageUrl":    p.ImageUrl,
				"tags":        p.Tags,
			}
		},
		idOf:    func(p store.Project) string { return p.ID },
		titleOf: func(p store.Project) string { return p.Title },
	}
}

func newTeamPages(repo *content.Team, renderer *render.Renderer) *contentAdmin[store.TeamMember, content.NewTeamMember, content.TeamMemberPatch] {
	return &contentAdmin[store.TeamMember, content.NewTeamMember, content.TeamMemberPatch]{
		repo:     repo,
		renderer: renderer,
		label:    "team member",
		plural:   "Team",
		basePath: redirectAdminTeam,
		listTmpl: tmplAdminTeam,
		fields: []FormField{
			{Name: "name", Label: "Name", Type: fieldText, Required: true, MaxLength: content.MaxNameLength},
			{Name: "role", Label: "Role", Type: fieldText, Required: true, MaxLength: content.MaxRoleLength},
			{Name: "bio", Label: "Bio", Type: fieldTextarea, MaxLength: content.MaxBioLength},
			{Name: "email", Label: "Email", Type: fieldEmail, MaxLength: content.MaxEmailLength},
			{Name: "linkedin", Label: "LinkedIn URL", Type: fieldURL, MaxLength: content.MaxURLLength},
			{Name: "twitter", Label: "Twitter URL", Type: fieldURL, MaxLength: content.MaxURLLength},
			{Name: "instagram", Label: "Instagram URL", Type: fieldURL, MaxLength: content.MaxURLLength},
		},
		toNew: func(v url.Values) content.NewTeamMember {
			return content.NewTeamMember{
				Name:      v.Get("name"),
				Role:      v.Get("role"),
				Bio:       v.Get("bio"),
				Instagram: v.Get("instagram"),
				Linkedin:  v.Get("linkedin"),
				Twitter:   v.Get("twitter"),
				Email:     v.Get("email"),
			}
		},
		toPatch: func(v url.Values) content.TeamMemberPatch {
			return content.TeamMemberPatch{
				Name:      util.Some(v.Get("name")),
				Role:      util.Some(v.Get("role")),
				Bio:       util.Some(v.Get("bio")),
				Instagram: util.Some(v.Get("instagram")),
				Linkedin:  util.Some(v.Get("linkedin")),
				Twitter:   util.Some(v.Get("twitter")),
				Email:     util.Some(v.Get("email")),
			}
		},
		values: func(m store.TeamMember) map[string]string {
			return map[string]string{
				"name":      m.Name,
				"role":      m.Role,
				"bio":       m.Bio,
				"email":     m.Email,
				"linkedin":  m.Linkedin,
				"twitter":   m.Twitter,
				"instagram": m.Instagram,
			}
		},
		idOf:    func(m store.TeamMember) string { return m.ID },
		titleOf: func(m store.TeamMember) string { return m.Name },
	}
}
