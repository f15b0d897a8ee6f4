// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/ciphercorp-site/internal/auth"
	"github.com/olegiv/ciphercorp-site/internal/content"
	"github.com/olegiv/ciphercorp-site/internal/store"
)

func (h *Handler) projectResource() resource[store.Project, content.NewProject, content.ProjectPatch] {
	return resource[store.Project, content.NewProject, content.ProjectPatch]{
		repo:  h.projects,
		label: "project",
		one:   "project",
		many:  "projects",
		idOf:  func(p store.Project) string { return p.ID },
	}
}

// ListProjects handles GET /api/projects.
// Returns {"projects": [...]} ordered for display.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	h.projectResource().list(w, r)
}

// GetProject handles GET /api/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	h.projectResource().get(w, r)
}

// CreateProject handles POST /api/projects.
// Title and description are required; the new project is appended last.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request, admin auth.Identity) {
	var req ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.projectResource().create(w, r, admin, req.toNew())
}

// ReplaceProject handles PUT /api/projects/{id}.
// Title and description must be sent; omitted optional fields are kept.
func (h *Handler) ReplaceProject(w http.ResponseWriter, r *http.Request, admin auth.Identity) {
	id, ok := requireID(w, r, "project")
	if !ok {
		return
	}
	var req ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.projectResource().update(w, r, admin, id, req.toReplace())
}

// PatchProject handles PATCH /api/projects/{id}. Any subset of fields may be sent.
func (h *Handler) PatchProject(w http.ResponseWriter, r *http.Request, admin auth.Identity) {
	id, ok := requireID(w, r, "project")
	if !ok {
		return
	}
	var req ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.projectResource().update(w, r, admin, id, req.toPatch())
}

// DeleteProject handles DELETE /api/projects/{id}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request, admin auth.Identity) {
	h.projectResource().delete(w, r, admin)
}
