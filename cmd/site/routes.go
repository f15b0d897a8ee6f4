// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/ciphercorp-site/internal/handler"
	"github.com/olegiv/ciphercorp-site/internal/handler/api"
	"github.com/olegiv/ciphercorp-site/internal/middleware"
	"github.com/olegiv/ciphercorp-site/web"
)

// routes builds the router with the full middleware stack.
func (app *application) routes() (http.Handler, error) {
	isDev := app.cfg.IsDevelopment()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.StripTrailingSlash)        // Redirect /path/ to /path (301)

	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(isDev)))
	r.Use(middleware.RequestPath)

	// A Bearer token is the session token; it must be in place before the
	// session is loaded.
	r.Use(middleware.BearerSession(app.sessions))
	r.Use(app.sessions.LoadAndSave)

	r.Use(middleware.SkipCSRFForBearer)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(app.cfg.SessionSecret), isDev, app.cfg.ServerPort)))
	slog.Info("CSRF protection initialized", "secure", !isDev)

	r.Use(middleware.LoadAdmin(app.auth))

	publicHandler := handler.NewPublicHandler(app.projects, app.team, app.renderer)
	authHandler := handler.NewAuthHandler(app.auth, app.renderer)
	adminHandler := handler.NewAdminHandler(app.projects, app.team, app.renderer)
	healthHandler := handler.NewHealthHandler(app.db, app.auth, app.cache, filepath.Dir(app.cfg.DBPath), app.version)
	seoHandler := handler.NewSEOHandler(app.projects, app.team, app.cfg.SiteURL(), isDev)
	apiHandler := api.NewHandler(app.auth, app.projects, app.team)

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Get("/sitemap.xml", seoHandler.Sitemap)
	r.Get("/robots.txt", seoHandler.Robots)

	r.Route("/api", apiHandler.Routes)

	r.Get(handler.RouteRoot, publicHandler.Home)
	r.Get(handler.RouteAbout, publicHandler.About)
	r.Get(handler.RouteProjects, publicHandler.Projects)
	r.Get(handler.RouteProjects+handler.RouteParamID, publicHandler.Project)
	r.Get(handler.RouteTeam, publicHandler.Team)
	r.Get(handler.RouteTeam+handler.RouteParamID, publicHandler.Member)

	r.Route(handler.RouteAdmin, func(r chi.Router) {
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.Post(handler.RouteLogin, authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(handler.RouteAdmin + handler.RouteLogin))
			r.Post(handler.RouteLogout, authHandler.Logout)
			adminHandler.Routes(r)
		})
	})

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return nil, fmt.Errorf("getting static fs: %w", err)
	}
	staticHandler := middleware.StaticCache(middleware.StaticAssetMaxAge)(http.StripPrefix("/static/dist/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/dist/*", staticHandler)

	r.NotFound(publicHandler.NotFound)

	return r, nil
}
