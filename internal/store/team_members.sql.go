// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const countTeamMembers = `-- name: CountTeamMembers :one
SELECT COUNT(*) FROM team_members
`

func (q *Queries) CountTeamMembers(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTeamMembers)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createTeamMember = `-- name: CreateTeamMember :one
INSERT INTO team_members (id, name, role, bio, instagram, linkedin, twitter, email, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(sort_order), -1) + 1 FROM team_members), ?, ?)
RETURNING id, name, role, bio, instagram, linkedin, twitter, email, sort_order, created_at, updated_at
`

type CreateTeamMemberParams struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio"`
	Instagram string    `json:"instagram"`
	Linkedin  string    `json:"linkedin"`
	Twitter   string    `json:"twitter"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Queries) CreateTeamMember(ctx context.Context, arg CreateTeamMemberParams) (TeamMember, error) {
	row := q.db.QueryRowContext(ctx, createTeamMember,
		arg.ID,
		arg.Name,
		arg.Role,
		arg.Bio,
		arg.Instagram,
		arg.Linkedin,
		arg.Twitter,
		arg.Email,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i TeamMember
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Role,
		&i.Bio,
		&i.Instagram,
		&i.Linkedin,
		&i.Twitter,
		&i.Email,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteTeamMember = `-- name: DeleteTeamMember :execrows
DELETE FROM team_members WHERE id = ?
`

func (q *Queries) DeleteTeamMember(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTeamMember, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getTeamMember = `-- name: GetTeamMember :one
SELECT id, name, role, bio, instagram, linkedin, twitter, email, sort_order, created_at, updated_at FROM team_members
WHERE id = ?
`

func (q *Queries) GetTeamMember(ctx context.Context, id string) (TeamMember, error) {
	row := q.db.QueryRowContext(ctx, getTeamMember, id)
	var i TeamMember
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Role,
		&i.Bio,
		&i.Instagram,
		&i.Linkedin,
		&i.Twitter,
		&i.Email,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listTeamMembers = `-- name: ListTeamMembers :many
SELECT id, name, role, bio, instagram, linkedin, twitter, email, sort_order, created_at, updated_at FROM team_members
ORDER BY sort_order ASC, rowid ASC
`

func (q *Queries) ListTeamMembers(ctx context.Context) ([]TeamMember, error) {
	rows, err := q.db.QueryContext(ctx, listTeamMembers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []TeamMember{}
	for rows.Next() {
		var i TeamMember
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Role,
			&i.Bio,
			&i.Instagram,
			&i.Linkedin,
			&i.Twitter,
			&i.Email,
			&i.SortOrder,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateTeamMember = `-- name: UpdateTeamMember :one
UPDATE team_members SET
    name = COALESCE(?, name),
    role = COALESCE(?, role),
    bio = COALESCE(?, bio),
    instagram = COALESCE(?, instagram),
    linkedin = COALESCE(?, linkedin),
    twitter = COALESCE(?, twitter),
    email = COALESCE(?, email),
    updated_at = ?
WHERE id = ?
RETURNING id, name, role, bio, instagram, linkedin, twitter, email, sort_order, created_at, updated_at
`

type UpdateTeamMemberParams struct {
	Name      sql.NullString `json:"name"`
	Role      sql.NullString `json:"role"`
	Bio       sql.NullString `json:"bio"`
	Instagram sql.NullString `json:"instagram"`
	Linkedin  sql.NullString `json:"linkedin"`
	Twitter   sql.NullString `json:"twitter"`
	Email     sql.NullString `json:"email"`
	UpdatedAt time.Time      `json:"updated_at"`
	ID        string         `json:"id"`
}

func (q *Queries) UpdateTeamMember(ctx context.Context, arg UpdateTeamMemberParams) (TeamMember, error) {
	row := q.db.QueryRowContext(ctx, updateTeamMember,
		arg.Name,
		arg.Role,
		arg.Bio,
		arg.Instagram,
		arg.Linkedin,
		arg.Twitter,
		arg.Email,
		arg.UpdatedAt,
		arg.ID,
	)
	var i TeamMember
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Role,
		&i.Bio,
		&i.Instagram,
		&i.Linkedin,
		&i.Twitter,
		&i.Email,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
