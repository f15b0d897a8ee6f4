// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/olegiv/ciphercorp-site/internal/content"
	"github.com/olegiv/ciphercorp-site/internal/util"
)

// ProjectRequest is the body of project create, replace and patch calls.
// Each field records whether it was sent at all.
type ProjectRequest struct {
	Title       util.Optional[string] `json:"title"`
	Description util.Optional[string] `json:"description"`
	Content     util.Optional[string] `json:"content"`
	ImageURL    util.Optional[string] `json:"imageUrl"`
	Tags        util.Optional[string] `json:"tags"`
}

func (req ProjectRequest) toNew() content.NewProject {
	return content.NewProject{
		Title:       req.Title.Value,
		Description: req.Description.Value,
		Content:     req.Content.Value,
		ImageURL:    req.ImageURL.Value,
		Tags:        req.Tags.Value,
	}
}

func (req ProjectRequest) toPatch() content.ProjectPatch {
	return content.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
	}
}

// toReplace is toPatch for PUT, which must carry title and description.
// A missing one is treated as empty so validation rejects it.
func (req ProjectRequest) toReplace() content.ProjectPatch {
	p := req.toPatch()
	p.Title = presentOrEmpty(p.Title)
	p.Description = presentOrEmpty(p.Description)
	return p
}

func presentOrEmpty(o util.Optional[string]) util.Optional[string] {
	if o.Set {
		return o
	}
	return util.Some("")
}

// TeamMemberRequest is the body of team member create, replace and patch calls.
type TeamMemberRequest struct {
	Name      util.Optional[string] `json:"name"`
	Role      util.Optional[string] `json:"role"`
	Bio       util.Optional[string] `json:"bio"`
	Instagram util.Optional[string] `json:"instagram"`
	Linkedin  util.Optional[string] `json:"linkedin"`
	Twitter   util.Optional[string] `json:"twitter"`
	Email     util.Optional[string] `json:"email"`
}

func (req TeamMemberRequest) toNew() content.NewTeamMember {
	return content.NewTeamMember{
		Name:      req.Name.Value,
		Role:      req.Role.Value,
		Bio:       req.Bio.Value,
		Instagram: req.Instagram.Value,
		Linkedin:  req.Linkedin.Value,
		Twitter:   req.Twitter.Value,
		Email:     req.Email.Value,
	}
}

func (req TeamMemberRequest) toPatch() content.TeamMemberPatch {
	return content.TeamMemberPatch{
		Name:      req.Name,
		Role:      req.Role,
		Bio:       req.Bio,
		Instagram: req.Instagram,
		Linkedin:  req.Linkedin,
		Twitter:   req.Twitter,
		Email:     req.Email,
	}
}

// toReplace is toPatch for PUT, which must carry name and role.
func (req TeamMemberRequest) toReplace() content.TeamMemberPatch {
	p := req.toPatch()
	p.Name = presentOrEmpty(p.Name)
	p.Role = presentOrEmpty(p.Role)
	return p
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login field limits.
const (
	MaxLoginEmailLength    = 255
	MaxLoginPasswordLength = 128
)
