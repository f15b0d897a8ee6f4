// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"time"

	"github.com/olegiv/ciphercorp-site/internal/cache"
	"github.com/olegiv/ciphercorp-site/internal/store"
	"github.com/olegiv/ciphercorp-site/internal/util"
)

// NewTeamMember is the input for creating a team member.
type NewTeamMember struct {
	Name      string
	Role      string
	Bio       string
	Instagram string
	Linkedin  string
	Twitter   string
	Email     string
}

// TeamMemberPatch holds the team member fields to change.
type TeamMemberPatch struct {
	Name      util.Optional[string]
	Role      util.Optional[string]
	Bio       util.Optional[string]
	Instagram util.Optional[string]
	Linkedin  util.Optional[string]
	Twitter   util.Optional[string]
	Email     util.Optional[string]
}

// Team is the repository for team members.
type Team = Repository[store.TeamMember, NewTeamMember, TeamMemberPatch]

var (
	memberName      = fieldRule{name: "name", label: "Name", required: true, max: MaxNameLength}
	memberRole      = fieldRule{name: "role", label: "Role", required: true, max: MaxRoleLength}
	memberBio       = fieldRule{name: "bio", label: "Bio", max: MaxBioLength}
	memberInstagram = fieldRule{name: "instagram", label: "Instagram", max: MaxURLLength}
	memberLinkedin  = fieldRule{name: "linkedin", label: "LinkedIn", max: MaxURLLength}
	memberTwitter   = fieldRule{name: "twitter", label: "Twitter", max: MaxURLLength}
	memberEmail     = fieldRule{name: "email", label: "Email", max: MaxEmailLength, email: true}
)

// NewTeam returns the team member repository. c may be nil.
func NewTeam(db store.DBTX, c cache.Cache, ttl time.Duration) *Team {
	return newRepository(db, c, ttl, kind[store.TeamMember, NewTeamMember, TeamMemberPatch]{
		name:       "team member",
		key:        "team",
		table:      store.RevisionTeamMembers,
		checkNew:   CheckNewTeamMember,
		checkPatch: CheckTeamMemberPatch,
		create:     createTeamMember,
		get: func(ctx context.Context, q *store.Queries, id string) (store.TeamMember, error) {
			return q.GetTeamMember(ctx, id)
		},
		list: func(ctx context.Context, q *store.Queries) ([]store.TeamMember, error) {
			return q.ListTeamMembers(ctx)
		},
		update: updateTeamMember,
		delete: func(ctx context.Context, q *store.Queries, id string) (int64, error) {
			return q.DeleteTeamMember(ctx, id)
		},
		count: func(ctx context.Context, q *store.Queries) (int64, error) {
			return q.CountTeamMembers(ctx)
		},
	})
}

// CheckNewTeamMember trims every field and reports missing or invalid values.
func CheckNewTeamMember(in NewTeamMember) (NewTeamMember, FieldErrors) {
	errs := FieldErrors{}
	in.Name = memberName.check(in.Name, errs)
	in.Role = memberRole.check(in.Role, errs)
	in.Bio = memberBio.check(in.Bio, errs)
	in.Instagram = memberInstagram.check(in.Instagram, errs)
	in.Linkedin = memberLinkedin.check(in.Linkedin, errs)
	in.Twitter = memberTwitter.check(in.Twitter, errs)
	in.Email = memberEmail.check(in.Email, errs)
	return in, errs
}

// CheckTeamMemberPatch trims the present fields. Name and role, when
// present, must not be empty.
func CheckTeamMemberPatch(p TeamMemberPatch) (TeamMemberPatch, FieldErrors) {
	errs := FieldErrors{}
	p.Name = memberName.checkOptional(p.Name, errs)
	p.Role = memberRole.checkOptional(p.Role, errs)
	p.Bio = memberBio.checkOptional(p.Bio, errs)
	p.Instagram = memberInstagram.checkOptional(p.Instagram, errs)
	p.Linkedin = memberLinkedin.checkOptional(p.Linkedin, errs)
	p.Twitter = memberTwitter.checkOptional(p.Twitter, errs)
	p.Email = memberEmail.checkOptional(p.Email, errs)
	return p, errs
}

func createTeamMember(ctx context.Context, q *store.Queries, id string, in NewTeamMember, now time.Time) (store.TeamMember, error) {
	return q.CreateTeamMember(ctx, store.CreateTeamMemberParams{
		ID:        id,
		Name:      in.Name,
		Role:      in.Role,
		Bio:       in.Bio,
		Instagram: in.Instagram,
		Linkedin:  in.Linkedin,
		Twitter:   in.Twitter,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func updateTeamMember(ctx context.Context, q *store.Queries, id string, p TeamMemberPatch, now time.Time) (store.TeamMember, error) {
	return q.UpdateTeamMember(ctx, store.UpdateTeamMemberParams{
		Name:      util.NullStringFromOptional(p.Name),
		Role:      util.NullStringFromOptional(p.Role),
		Bio:       util.NullStringFromOptional(p.Bio),
		Instagram: util.NullStringFromOptional(p.Instagram),
		Linkedin:  util.NullStringFromOptional(p.Linkedin),
		Twitter:   util.NullStringFromOptional(p.Twitter),
		Email:     util.NullStringFromOptional(p.Email),
		UpdatedAt: now,
		ID:        id,
	})
}
