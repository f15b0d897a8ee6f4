// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteAbout is the about page.
	RouteAbout = "/about"
	// RouteProjects is the public project list.
	RouteProjects = "/projects"
	// RouteTeam is the public team list.
	RouteTeam = "/team"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the suffix for edit form routes.
	RouteSuffixEdit = "/edit"
	// RouteSuffixDelete is the suffix for delete routes.
	RouteSuffixDelete = "/delete"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"

	// RouteAdmin is the admin panel prefix.
	RouteAdmin = "/admin"
)

// Redirect targets.
const (
	redirectAdmin         = RouteAdmin
	redirectAdminLogin    = RouteAdmin + RouteLogin
	redirectAdminProjects = RouteAdmin + RouteProjects
	redirectAdminTeam     = RouteAdmin + RouteTeam
)

// Flash message types understood by the templates.
const (
	flashTypeSuccess = "success"
	flashTypeError   = "error"
)

// Template names.
const (
	tmplHome      = "public/home"
	tmplAbout     = "public/about"
	tmplProjects  = "public/projects"
	tmplProject   = "public/project"
	tmplTeam      = "public/team"
	tmplMember    = "public/member"
	tmplNotFound  = "public/not_found"
	tmplLogin     = "auth/login"
	tmplDashboard = "admin/dashboard"
)

// homeFeaturedProjects is how many projects the home page shows.
const homeFeaturedProjects = 3

// Admin template names.
const (
	tmplAdminProjects = "admin/projects"
	tmplAdminTeam     = "admin/team"
	tmplAdminForm     = "admin/form"
)
