// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/ciphercorp-site/internal/content"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	data := map[string]string{"key": "value"}
	WriteJSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got %s", ct)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp["key"] != "value" {
		t.Errorf("expected key 'value', got %s", resp["key"])
	}
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w)

	assertStatusCode(t, w, http.StatusOK)
	if got := w.Body.String(); got != "{\"success\":true}\n" {
		t.Errorf("body = %q, want {\"success\":true}", got)
	}
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()

	data := map[string]string{"id": "123"}
	WriteCreated(w, data)

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "bad_request", "Invalid input", map[string]string{
		"field": "name",
	})

	assertStatusCode(t, w, http.StatusBadRequest)
	resp := assertErrorResponse(t, w, "bad_request")

	if resp.Error.Message != "Invalid input" {
		t.Errorf("expected message 'Invalid input', got %s", resp.Error.Message)
	}
	if resp.Error.Details["field"] != "name" {
		t.Errorf("expected details.field 'name', got %s", resp.Error.Details["field"])
	}
}

func TestWriteHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(w http.ResponseWriter) { WriteBadRequest(w, "Bad input", nil) }, http.StatusBadRequest, "bad_request"},
		{"not found", func(w http.ResponseWriter) { WriteNotFound(w, "Resource not found") }, http.StatusNotFound, "not_found"},
		{"unauthorized", func(w http.ResponseWriter) { WriteUnauthorized(w, "Not authenticated") }, http.StatusUnauthorized, "unauthorized"},
		{"invalid credentials", WriteInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"internal", func(w http.ResponseWriter) { WriteInternalError(w, "Something went wrong") }, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			assertStatusCode(t, w, tt.status)
			assertErrorResponse(t, w, tt.code)
		})
	}
}

func TestWriteValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteValidationError(w, map[string]string{
		"email": "Invalid email format",
		"name":  "Required field",
	})

	assertStatusCode(t, w, http.StatusUnprocessableEntity)
	resp := assertErrorResponse(t, w, "validation_error")

	if len(resp.Error.Details) != 2 {
		t.Errorf("expected 2 error details, got %d", len(resp.Error.Details))
	}
}

func TestWriteRepoError(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeRepoError(w, content.ErrNotFound, "team member")
		assertStatusCode(t, w, http.StatusNotFound)
		resp := assertErrorResponse(t, w, "not_found")
		if resp.Error.Message != "Team member not found" {
			t.Errorf("message = %q", resp.Error.Message)
		}
	})

	t.Run("validation is distinct from bad request", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := &content.ValidationError{Fields: content.FieldErrors{"title": "Title is required"}}
		writeRepoError(w, err, "project")
		assertStatusCode(t, w, http.StatusUnprocessableEntity)
		resp := assertErrorResponse(t, w, "validation_error")
		if resp.Error.Details["title"] != "Title is required" {
			t.Errorf("details = %v", resp.Error.Details)
		}
	})

	t.Run("anything else is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeRepoError(w, errors.New("disk on fire"), "project")
		assertStatusCode(t, w, http.StatusInternalServerError)
		resp := assertErrorResponse(t, w, "internal_error")
		if resp.Error.Message != "Failed to process project" {
			t.Errorf("message = %q", resp.Error.Message)
		}
	})
}

func TestCapitalizeFirst(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"project":     "Project",
		"team member": "Team member",
	}
	for in, want := range tests {
		if got := capitalizeFirst(in); got != want {
			t.Errorf("capitalizeFirst(%q) = %q, want %q", in, got, want)
		}
	}
}
