// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/ciphercorp-site/internal/auth"
	"github.com/olegiv/ciphercorp-site/internal/content"
	"github.com/olegiv/ciphercorp-site/internal/store"
)

func (h *Handler) teamResource() resource[store.TeamMember, content.NewTeamMember, content.TeamMemberPatch] {
	return resource[store.TeamMember, content.NewTeamMember, content.TeamMemberPatch]{
		repo:  h.team,
		label: "team member",
		one:   "member",
		many:  "members",
		idOf:  func(m store.TeamMember) string { return m.ID },
	}
}

// ListTeam handles GET /api/team.
// Returns {"members": [...]} ordered for display.
func (h *Handler) ListTeam(w http.ResponseWriter, r *http.Request) {
	h.teamResource().list(w, r)
}

// GetTeamMember handles GET /api/team/{id}.
func (h *Handler) GetTeamMember(w http.ResponseWriter, r *http.Request) {
	h.teamResource().get(w, r)
}

// CreateTeamMember handles POST /api/team.
// Name and role are required; the new member is appended last.
func (h *Handler) CreateTeamMember(w http.ResponseWriter, r *http.Request, admin auth.Identity) {
	var req TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.teamResource().create(w, r, admin, req.toNew())
}

// ReplaceTeamMember handles PUT /api/team/{id}.
// Name and role must be sent; omitted optional fields are kept.
func (h *Handler) ReplaceTeamMember(w http.ResponseWriter, r *http.Request, admin auth.Identity) {
	id, ok := requireID(w, r, "team member")
	if !ok {
		return
	}
	var req TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.teamResource().update(w, r, admin, id, req.toReplace())
}

// PatchTeamMember handles PATCH /api/team/{id}. Any subset of fields may be sent.
func (h *Handler) PatchTeamMember(w http.ResponseWriter, r *http.Request, admin auth.Identity) {
	id, ok := requireID(w, r, "team member")
	if !ok {
		return
	}
	var req TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.teamResource().update(w, r, admin, id, req.toPatch())
}

// DeleteTeamMember handles DELETE /api/team/{id}.
func (h *Handler) DeleteTeamMember(w http.ResponseWriter, r *http.Request, admin auth.Identity) {
	h.teamResource().delete(w, r, admin)
}
