// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/olegiv/ciphercorp-site/internal/content"
	"github.com/olegiv/ciphercorp-site/internal/render"
	"github.com/olegiv/ciphercorp-site/internal/store"
)

// PublicHandler serves the marketing pages.
type PublicHandler struct {
	projects *content.Projects
	team     *content.Team
	renderer *render.Renderer
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(projects *content.Projects, team *content.Team, renderer *render.Renderer) *PublicHandler {
	return &PublicHandler{
		projects: projects,
		team:     team,
		renderer: renderer,
	}
}

// HomeData is the data for the home page.
type HomeData struct {
	Featured      []store.Project
	TotalProjects int
	Team          []store.TeamMember
}

// Home handles GET /.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list projects", "error", err)
		return
	}
	team, err := h.team.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list team", "error", err)
		return
	}

	featured := projects
	if len(featured) > homeFeaturedProjects {
		featured = featured[:homeFeaturedProjects]
	}

	renderPage(w, r, h.renderer, http.StatusOK, tmplHome, render.TemplateData{
		Data: HomeData{
			Featured:      featured,
			TotalProjects: len(projects),
			Team:          team,
		},
	})
}

// About handles GET /about.
func (h *PublicHandler) About(w http.ResponseWriter, r *http.Request) {
	team, err := h.team.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list team", "error", err)
		return
	}

	renderPage(w, r, h.renderer, http.StatusOK, tmplAbout, render.TemplateData{
		Title: "About us",
		Data:  team,
	})
}

// Projects handles GET /projects.
func (h *PublicHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list projects", "error", err)
		return
	}

	renderPage(w, r, h.renderer, http.StatusOK, tmplProjects, render.TemplateData{
		Title: "Projects",
		Data:  projects,
	})
}

// Project handles GET /projects/{id}.
func (h *PublicHandler) Project(w http.ResponseWriter, r *http.Request) {
	project, ok := showRecord(w, r, h.renderer, h.projects)
	if !ok {
		return
	}

	renderPage(w, r, h.renderer, http.StatusOK, tmplProject, render.TemplateData{
		Title: project.Title,
		Data:  project,
	})
}

// Team handles GET /team.
func (h *PublicHandler) Team(w http.ResponseWriter, r *http.Request) {
	team, err := h.team.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list team", "error", err)
		return
	}

	renderPage(w, r, h.renderer, http.StatusOK, tmplTeam, render.TemplateData{
		Title: "Our team",
		Data:  team,
	})
}

// Member handles GET /team/{id}.
func (h *PublicHandler) Member(w http.ResponseWriter, r *http.Request) {
	member, ok := showRecord(w, r, h.renderer, h.team)
	if !ok {
		return
	}

	renderPage(w, r, h.renderer, http.StatusOK, tmplMember, render.TemplateData{
		Title: member.Name,
		Data:  member,
	})
}

// NotFound renders the 404 page for unmatched routes.
func (h *PublicHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	renderNotFound(w, r, h.renderer)
}

// showRecord loads the record named by the {id} URL parameter. Malformed
// and unknown ids both render the 404 page.
func showRecord[R, N, P any](w http.ResponseWriter, r *http.Request, renderer *render.Renderer, repo *content.Repository[R, N, P]) (R, bool) {
	var zero R

	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		renderNotFound(w, r, renderer)
		return zero, false
	}

	rec, err := repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			renderNotFound(w, r, renderer)
		} else {
			logAndInternalError(w, "failed to load "+repo.Name(), "id", id, "error", err)
		}
		return zero, false
	}
	return rec, true
}
