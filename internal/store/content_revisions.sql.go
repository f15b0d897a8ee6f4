// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

// Content tables tracked in content_revisions.
const (
	RevisionProjects    = "projects"
	RevisionTeamMembers = "team_members"
)

const getContentRevision = `-- name: GetContentRevision :one
SELECT revision FROM content_revisions WHERE kind = ?
`

// GetContentRevision returns the write counter of a content table. Triggers
// bump it on every insert, update and delete of that table.
func (q *Queries) GetContentRevision(ctx context.Context, kind string) (int64, error) {
	row := q.db.QueryRowContext(ctx, getContentRevision, kind)
	var revision int64
	err := row.Scan(&revision)
	return revision, err
}
