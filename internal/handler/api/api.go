// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API for site content and admin sessions.
// Reads are public; every write takes the authenticated admin as an
// explicit auth.Identity argument.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/olegiv/ciphercorp-site/internal/auth"
	"github.com/olegiv/ciphercorp-site/internal/content"
)

// MaxBodyBytes caps the size of a JSON request body.
const MaxBodyBytes = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	auth     *auth.Authenticator
	projects *content.Projects
	team     *content.Team
}

// NewHandler creates a new API handler.
func NewHandler(a *auth.Authenticator, projects *content.Projects, team *content.Team) *Handler {
	return &Handler{
		auth:     a,
		projects: projects,
		team:     team,
	}
}

// Routes registers the API endpoints on r. The session manager's
// LoadAndSave middleware must run before these handlers.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/session", h.Session)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.ListProjects)
		r.Post("/", h.RequireAdmin(h.CreateProject))
		r.Get("/{id}", h.GetProject)
		r.Put("/{id}", h.RequireAdmin(h.ReplaceProject))
		r.Patch("/{id}", h.RequireAdmin(h.PatchProject))
		r.Delete("/{id}", h.RequireAdmin(h.DeleteProject))
	})

	r.Route("/team", func(r chi.Router) {
		r.Get("/", h.ListTeam)
		r.Post("/", h.RequireAdmin(h.CreateTeamMember))
		r.Get("/{id}", h.GetTeamMember)
		r.Put("/{id}", h.RequireAdmin(h.ReplaceTeamMember))
		r.Patch("/{id}", h.RequireAdmin(h.PatchTeamMember))
		r.Delete("/{id}", h.RequireAdmin(h.DeleteTeamMember))
	})
}

// ProtectedFunc is a handler that runs only for an authenticated admin.
type ProtectedFunc func(w http.ResponseWriter, r *http.Request, admin auth.Identity)

// RequireAdmin authenticates the request before anything else happens,
// including reading the body, and passes the admin to next.
func (h *Handler) RequireAdmin(next ProtectedFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := h.auth.Authenticate(r)
		if err != nil {
			if !errors.Is(err, auth.ErrUnauthenticated) {
				slog.Error("authenticating request failed", "error", err, "path", r.URL.Path)
			}
			WriteUnauthorized(w, "Authentication required")
			return
		}
		next(w, r, admin)
	}
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse acknowledges an operation with no other result.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK JSON response.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

// WriteSuccess writes {"success":true}.
func WriteSuccess(w http.ResponseWriter) {
	WriteOK(w, SuccessResponse{Success: true})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	resp := ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	WriteJSON(w, statusCode, resp)
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteInvalidCredentials writes the single response used for every failed login.
func WriteInvalidCredentials(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// decodeJSON reads the request body into dst. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			WriteBadRequest(w, "Invalid JSON body", map[string]string{
				typeErr.Field: fmt.Sprintf("must be a %s", typeErr.Type),
			})
		case errors.As(err, &maxErr):
			WriteBadRequest(w, "Request body too large", nil)
		default:
			WriteBadRequest(w, "Invalid JSON body", nil)
		}
		return false
	}
	return true
}

// requireID reads the {id} URL parameter. It writes a 400 and returns
// false when the id is not a UUID.
func requireID(w http.ResponseWriter, r *http.Request, label string) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := uuid.Validate(id); err != nil {
		WriteBadRequest(w, "Invalid "+label+" ID", nil)
		return "", false
	}
	return id, true
}

// writeRepoError maps a content repository error onto the API taxonomy.
func writeRepoError(w http.ResponseWriter, err error, label string) {
	if errors.Is(err, content.ErrNotFound) {
		WriteNotFound(w, capitalizeFirst(label)+" not found")
		return
	}
	if ve, ok := content.IsValidation(err); ok {
		WriteValidationError(w, ve.Fields)
		return
	}
	slog.Error("content operation failed", "kind", label, "error", err)
	WriteInternalError(w, "Failed to process "+label)
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
