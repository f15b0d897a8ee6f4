// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const countProjects = `-- name: CountProjects :one
SELECT COUNT(*) FROM projects
`

func (q *Queries) CountProjects(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countProjects)
	var count int64
	err := row.Scan(&count)
	return count, err
}

// The new row's sort_order is computed by the same statement that inserts
// it, so two creates can never observe the same maximum.
const createProject = `-- name: CreateProject :one
INSERT INTO projects (id, title, description, content, image_url, tags, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(sort_order), -1) + 1 FROM projects), ?, ?)
RETURNING id, title, description, content, image_url, tags, sort_order, created_at, updated_at
`

type CreateProjectParams struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	ImageUrl    string    `json:"image_url"`
	Tags        string    `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRowContext(ctx, createProject,
		arg.ID,
		arg.Title,
		arg.Description,
		arg.Content,
		arg.ImageUrl,
		arg.Tags,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Project
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Content,
		&i.ImageUrl,
		&i.Tags,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteProject = `-- name: DeleteProject :execrows
DELETE FROM projects WHERE id = ?
`

func (q *Queries) DeleteProject(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteProject, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getProject = `-- name: GetProject :one
SELECT id, title, description, content, image_url, tags, sort_order, created_at, updated_at FROM projects
WHERE id = ?
`

func (q *Queries) GetProject(ctx context.Context, id string) (Project, error) {
	row := q.db.QueryRowContext(ctx, getProject, id)
	var i Project
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Content,
		&i.ImageUrl,
		&i.Tags,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// rowid breaks ties between equal sort_order values in insertion order.
const listProjects = `-- name: ListProjects :many
SELECT id, title, description, content, image_url, tags, sort_order, created_at, updated_at FROM projects
ORDER BY sort_order ASC, rowid ASC
`

func (q *Queries) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := q.db.QueryContext(ctx, listProjects)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Project{}
	for rows.Next() {
		var i Project
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Description,
			&i.Content,
			&i.ImageUrl,
			&i.Tags,
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

// NULL parameters leave the stored column untouched.
const updateProject = `-- name: UpdateProject :one
UPDATE projects SET
    title = COALESCE(?, title),
    description = COALESCE(?, description),
    content = COALESCE(?, content),
    image_url = COALESCE(?, image_url),
    tags = COALESCE(?, tags),
    updated_at = ?
WHERE id = ?
RETURNING id, title, description, content, image_url, tags, sort_order, created_at, updated_at
`

type UpdateProjectParams struct {
	Title       sql.NullString `json:"title"`
	Description sql.NullString `json:"description"`
	Content     sql.NullString `json:"content"`
	ImageUrl    sql.NullString `json:"image_url"`
	Tags        sql.NullString `json:"tags"`
	UpdatedAt   time.Time      `json:"updated_at"`
	ID          string         `json:"id"`
}

func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (Project, error) {
	row := q.db.QueryRowContext(ctx, updateProject,
		arg.Title,
		arg.Description,
		arg.Content,
		arg.ImageUrl,
		arg.Tags,
		arg.UpdatedAt,
		arg.ID,
	)
	var i Project
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Content,
		&i.ImageUrl,
		&i.Tags,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
