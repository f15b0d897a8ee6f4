// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/olegiv/ciphercorp-site/internal/content"
	"github.com/olegiv/ciphercorp-site/internal/middleware"
	"github.com/olegiv/ciphercorp-site/internal/render"
)

// Form field input types.
const (
	fieldText     = "text"
	fieldTextarea = "textarea"
	fieldMarkdown = "markdown"
	fieldURL      = "url"
	fieldEmail    = "email"
)

// FormField describes one input of an admin form.
type FormField struct {
	Name      string
	Label     string
	Type      string
	Required  bool
	MaxLength int
}

// FormInput is a form field together with its current value and error.
type FormInput struct {
	FormField
	Value string
	Error string
}

// FormData is the data for the admin create and edit form.
type FormData struct {
	Heading string
	Action  string
	Cancel  string
	Submit  string
	IsNew   bool
	Inputs  []FormInput
}

// ListData is the data for an admin content list.
type ListData[R any] struct {
	Records []R
	NewURL  string
	Base    string
}

// contentAdmin serves list, create, edit and delete pages for one kind of
// content record.
type contentAdmin[R, N, P any] struct {
	repo     *content.Repository[R, N, P]
	renderer *render.Renderer

	label    string
	plural   string
	basePath string
	listTmpl string
	fields   []FormField

	toNew   func(url.Values) N
	toPatch func(url.Values) P
	values  func(R) map[string]string
	idOf    func(R) string
	titleOf func(R) string
}

func (c *contentAdmin[R, N, P]) routes(r chi.Router) {
	r.Get(RouteRoot, c.list)
	r.Post(RouteRoot, c.create)
	r.Get(RouteSuffixNew, c.newForm)
	r.Get(RouteParamID+RouteSuffixEdit, c.editForm)
	r.Post(RouteParamID, c.update)
	r.Post(RouteParamID+RouteSuffixDelete, c.delete)
}

func (c *contentAdmin[R, N, P]) list(w http.ResponseWriter, r *http.Request) {
	records, err := c.repo.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list "+c.repo.Name(), "error", err)
		return
	}

	renderPage(w, r, c.renderer, http.StatusOK, c.listTmpl, render.TemplateData{
		Title: c.plural,
		Data: ListData[R]{
			Records: records,
			NewURL:  c.basePath + RouteSuffixNew,
			Base:    c.basePath,
		},
	})
}

func (c *contentAdmin[R, N, P]) newForm(w http.ResponseWriter, r *http.Request) {
	c.renderForm(w, r, http.StatusOK, "", nil, nil)
}

func (c *contentAdmin[R, N, P]) create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, c.renderer, c.basePath+RouteSuffixNew) {
		return
	}

	rec, err := c.repo.Create(r.Context(), c.toNew(r.PostForm))
	if err != nil {
		if ve, ok := content.IsValidation(err); ok {
			c.renderForm(w, r, http.StatusUnprocessableEntity, "", formValues(r.PostForm, c.fields), ve.Fields)
			return
		}
		logAndInternalError(w, "failed to create "+c.label, "error", err)
		return
	}

	slog.Info(c.label+" created", "id", c.idOf(rec), "admin_id", adminID(r))
	flashSuccess(w, r, c.renderer, c.basePath, capitalize(c.label)+" \""+c.titleOf(rec)+"\" created")
}

func (c *contentAdmin[R, N, P]) editForm(w http.ResponseWriter, r *http.Request) {
	id, ok := c.recordID(w, r)
	if !ok {
		return
	}

	rec, err := c.repo.Get(r.Context(), id)
	if err != nil {
		c.repoError(w, r, err, "failed to load "+c.label, id)
		return
	}

	c.renderForm(w, r, http.StatusOK, id, c.values(rec), nil)
}

func (c *contentAdmin[R, N, P]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := c.recordID(w, r)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, c.renderer, c.editPath(id)) {
		return
	}

	rec, err := c.repo.Update(r.Context(), id, c.toPatch(r.PostForm))
	if err != nil {
		if ve, ok := content.IsValidation(err); ok {
			c.renderForm(w, r, http.StatusUnprocessableEntity, id, formValues(r.PostForm, c.fields), ve.Fields)
			return
		}
		c.repoError(w, r, err, "failed to update "+c.label, id)
		return
	}

	slog.Info(c.label+" updated", "id", id, "admin_id", adminID(r))
	flashSuccess(w, r, c.renderer, c.basePath, capitalize(c.label)+" \""+c.titleOf(rec)+"\" updated")
}

func (c *contentAdmin[R, N, P]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := c.recordID(w, r)
	if !ok {
		return
	}

	if err := c.repo.Delete(r.Context(), id); err != nil {
		c.repoError(w, r, err, "failed to delete "+c.label, id)
		return
	}

	slog.Info(c.label+" deleted", "id", id, "admin_id", adminID(r))
	flashSuccess(w, r, c.renderer, c.basePath, capitalize(c.label)+" deleted")
}

// recordID reads the {id} URL parameter, sending the admin back to the
// list when it is not a UUID.
func (c *contentAdmin[R, N, P]) recordID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		flashError(w, r, c.renderer, c.basePath, capitalize(c.label)+" not found")
		return "", false
	}
	return id, true
}

func (c *contentAdmin[R, N, P]) repoError(w http.ResponseWriter, r *http.Request, err error, logMsg, id string) {
	if errors.Is(err, content.ErrNotFound) {
		flashError(w, r, c.renderer, c.basePath, capitalize(c.label)+" not found")
		return
	}
	logAndInternalError(w, logMsg, "id", id, "error", err)
}

func (c *contentAdmin[R, N, P]) editPath(id string) string {
	return c.basePath + "/" + id + RouteSuffixEdit
}

// renderForm renders the create form when id is empty and the edit form
// otherwise.
func (c *contentAdmin[R, N, P]) renderForm(w http.ResponseWriter, r *http.Request, status int, id string, values, errs map[string]string) {
	data := FormData{
		Cancel: c.basePath,
		IsNew:  id == "",
	}
	if data.IsNew {
		data.Heading = "New " + c.label
		data.Action = c.basePath
		data.Submit = "Create"
	} else {
		data.Heading = "Edit " + c.label
		data.Action = c.basePath + "/" + id
		data.Submit = "Save"
	}

	for _, f := range c.fields {
		data.Inputs = append(data.Inputs, FormInput{
			FormField: f,
			Value:     values[f.Name],
			Error:     errs[f.Name],
		})
	}

	renderPage(w, r, c.renderer, status, tmplAdminForm, render.TemplateData{
		Title: data.Heading,
		Data:  data,
	})
}

// formValues collects the submitted values of the given fields so a
// rejected form can be shown again as typed.
func formValues(v url.Values, fields []FormField) map[string]string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Name] = v.Get(f.Name)
	}
	return values
}

func adminID(r *http.Request) string {
	if admin, ok := middleware.GetAdmin(r); ok {
		return admin.AdminID
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
