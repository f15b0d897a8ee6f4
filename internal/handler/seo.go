// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/ciphercorp-site/internal/content"
	"github.com/olegiv/ciphercorp-site/internal/seo"
)

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	projects *content.Projects
	team     *content.Team
	siteURL  string
	isDev    bool
}

// NewSEOHandler creates a new SEOHandler. Development sites ask crawlers
// to stay away entirely.
func NewSEOHandler(projects *content.Projects, team *content.Team, siteURL string, isDev bool) *SEOHandler {
	return &SEOHandler{
		projects: projects,
		team:     team,
		siteURL:  siteURL,
		isDev:    isDev,
	}
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list projects for sitemap", "error", err)
		return
	}
	team, err := h.team.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list team for sitemap", "error", err)
		return
	}

	b := seo.NewSitemapBuilder(h.siteURL)
	b.AddHomepage()
	b.AddSection(RouteAbout)
	b.AddSection(RouteProjects)
	b.AddSection(RouteTeam)

	entries := make([]seo.Entry, 0, len(projects))
	for _, p := range projects {
		entries = append(entries, seo.Entry{ID: p.ID, UpdatedAt: p.UpdatedAt})
	}
	b.AddEntries(RouteProjects, entries)

	entries = make([]seo.Entry, 0, len(team))
	for _, m := range team {
		entries = append(entries, seo.Entry{ID: m.ID, UpdatedAt: m.UpdatedAt})
	}
	b.AddEntries(RouteTeam, entries)

	out, err := b.Build()
	if err != nil {
		logAndInternalError(w, "failed to build sitemap", "error", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.siteURL,
		DisallowAll: h.isDev,
	})))
}
