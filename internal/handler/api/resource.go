// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/ciphercorp-site/internal/auth"
	"github.com/olegiv/ciphercorp-site/internal/content"
)

// resource serves one content repository. Payload problems found here are
// 400s; the repository validates again and its errors are 422s.
type resource[R, N, P any] struct {
	repo  *content.Repository[R, N, P]
	label string // used in messages, e.g. "project"
	one   string // JSON key wrapping a single record
	many  string // JSON key wrapping the list
	idOf  func(R) string
}

func (res resource[R, N, P]) list(w http.ResponseWriter, r *http.Request) {
	recs, err := res.repo.List(r.Context())
	if err != nil {
		writeRepoError(w, err, res.label)
		return
	}
	WriteOK(w, map[string]any{res.many: recs})
}

func (res resource[R, N, P]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, res.label)
	if !ok {
		return
	}

	rec, err := res.repo.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, res.label)
		return
	}
	WriteOK(w, map[string]any{res.one: rec})
}

func (res resource[R, N, P]) create(w http.ResponseWriter, r *http.Request, admin auth.Identity, in N) {
	if _, errs := res.repo.CheckNew(in); len(errs) > 0 {
		WriteBadRequest(w, "Invalid "+res.label, errs)
		return
	}

	rec, err := res.repo.Create(r.Context(), in)
	if err != nil {
		writeRepoError(w, err, res.label)
		return
	}

	slog.Info(res.label+" created", "id", res.idOf(rec), "admin_id", admin.AdminID)
	WriteCreated(w, map[string]any{res.one: rec})
}

func (res resource[R, N, P]) update(w http.ResponseWriter, r *http.Request, admin auth.Identity, id string, p P) {
	if _, errs := res.repo.CheckPatch(p); len(errs) > 0 {
		WriteBadRequest(w, "Invalid "+res.label, errs)
		return
	}

	rec, err := res.repo.Update(r.Context(), id, p)
	if err != nil {
		writeRepoError(w, err, res.label)
		return
	}

	slog.Info(res.label+" updated", "id", id, "admin_id", admin.AdminID)
	WriteOK(w, map[string]any{res.one: rec})
}

func (res resource[R, N, P]) delete(w http.ResponseWriter, r *http.Request, admin auth.Identity) {
	id, ok := requireID(w, r, res.label)
	if !ok {
		return
	}

	if err := res.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, res.label)
		return
	}

	slog.Info(res.label+" deleted", "id", id, "admin_id", admin.AdminID)
	WriteSuccess(w)
}
