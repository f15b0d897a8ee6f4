// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"time"

	"github.com/olegiv/ciphercorp-site/internal/util"
)

// Admin is a stored admin credential. The hash never leaves the server.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Project is a portfolio entry. Tags is a comma-separated label list.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	ImageUrl    string    `json:"imageUrl"`
	Tags        string    `json:"tags"`
	SortOrder   int64     `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TeamMember is a person shown on the about and team pages.
type TeamMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio"`
	Instagram string    `json:"instagram"`
	Linkedin  string    `json:"linkedin"`
	Twitter   string    `json:"twitter"`
	Email     string    `json:"email"`
	SortOrder int64     `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TagList returns the project's tags as separate labels.
func (p Project) TagList() []string {
	return util.SplitTags(p.Tags)
}

// MailtoURL returns a mailto: link for the member's email, or "" when unset.
func (m TeamMember) MailtoURL() string {
	if m.Email == "" {
		return ""
	}
	return "mailto:" + m.Email
}
