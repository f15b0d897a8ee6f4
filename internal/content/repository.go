// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content stores the site's ordered content records, projects and
// team members, behind one generic repository.
//
// New records are appended: their order is one more than the current
// maximum, or 0 for the first record. Deletes leave gaps and nothing is
// ever renumbered. Lists are sorted by order, then by insertion.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/ciphercorp-site/internal/cache"
	"github.com/olegiv/ciphercorp-site/internal/store"
)

// kind binds a record type to its queries and validation.
// R is the stored record, N its create input and P its patch input.
type kind[R, N, P any] struct {
	name       string // singular, for messages
	key        string // cache key segment
	table      string // row in content_revisions
	checkNew   func(N) (N, FieldErrors)
	checkPatch func(P) (P, FieldErrors)

	create func(ctx context.Context, q *store.Queries, id string, in N, now time.Time) (R, error)
	get    func(ctx context.Context, q *store.Queries, id string) (R, error)
	list   func(ctx context.Context, q *store.Queries) ([]R, error)
	update func(ctx context.Context, q *store.Queries, id string, p P, now time.Time) (R, error)
	delete func(ctx context.Context, q *store.Queries, id string) (int64, error)
	count  func(ctx context.Context, q *store.Queries) (int64, error)
}

// Repository is the content store for one record kind.
// Every write is a single SQL statement, so it applies fully or not at all.
//
// Cached lists are keyed by the table's revision, which the store bumps in
// the same statement as each write. A list loaded before a write can only
// land under the old revision's key, which no later List reads.
type Repository[R, N, P any] struct {
	queries *store.Queries
	kind    kind[R, N, P]
	lists   *cache.TypedCache[[]R] // nil disables list caching
}

func newRepository[R, N, P any](db store.DBTX, c cache.Cache, ttl time.Duration, k kind[R, N, P]) *Repository[R, N, P] {
	r := &Repository[R, N, P]{
		queries: store.New(db),
		kind:    k,
	}
	if c != nil {
		r.lists = cache.NewTypedCache[[]R](c, ttl)
	}
	return r
}

// Name is the record kind, e.g. "project".
func (r *Repository[R, N, P]) Name() string {
	return r.kind.name
}

// CheckNew trims and validates a create input without storing it.
func (r *Repository[R, N, P]) CheckNew(in N) (N, FieldErrors) {
	return r.kind.checkNew(in)
}

// CheckPatch trims and validates a patch without storing it.
func (r *Repository[R, N, P]) CheckPatch(p P) (P, FieldErrors) {
	return r.kind.checkPatch(p)
}

// Create validates in, assigns a fresh id and the next order, and stores it.
func (r *Repository[R, N, P]) Create(ctx context.Context, in N) (R, error) {
	var zero R

	in, errs := r.kind.checkNew(in)
	if err := errs.asError(); err != nil {
		return zero, err
	}

	rec, err := r.kind.create(ctx, r.queries, uuid.NewString(), in, time.Now().UTC())
	if err != nil {
		return zero, fmt.Errorf("creating %s: %w", r.kind.name, err)
	}

	return rec, nil
}

// Get returns the record with id, or ErrNotFound.
func (r *Repository[R, N, P]) Get(ctx context.Context, id string) (R, error) {
	rec, err := r.kind.get(ctx, r.queries, id)
	if err != nil {
		return rec, r.notFound(err, "getting")
	}
	return rec, nil
}

// List returns every record ascending by order. The slice is never nil.
func (r *Repository[R, N, P]) List(ctx context.Context) ([]R, error) {
	load := func() ([]R, error) {
		recs, err := r.kind.list(ctx, r.queries)
		if err != nil {
			return nil, fmt.Errorf("listing %ss: %w", r.kind.name, err)
		}
		return recs, nil
	}

	if r.lists == nil {
		return load()
	}

	// Read before loading, so the cached list is never older than its key.
	rev, err := r.queries.GetContentRevision(ctx, r.kind.table)
	if err != nil {
		return nil, fmt.Errorf("reading %s revision: %w", r.kind.name, err)
	}

	recs, err := r.lists.GetOrLoad(ctx, r.listKey(rev), load, func(err error) {
		slog.Warn("content list cache unavailable", "kind", r.kind.name, "error", err)
	})
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []R{}
	}
	return recs, nil
}

// Update applies the fields present in p and keeps the others.
func (r *Repository[R, N, P]) Update(ctx context.Context, id string, p P) (R, error) {
	var zero R

	p, errs := r.kind.checkPatch(p)
	if err := errs.asError(); err != nil {
		return zero, err
	}

	rec, err := r.kind.update(ctx, r.queries, id, p, time.Now().UTC())
	if err != nil {
		return zero, r.notFound(err, "updating")
	}
	return rec, nil
}

// Delete removes the record with id. A second delete reports ErrNotFound.
func (r *Repository[R, N, P]) Delete(ctx context.Context, id string) error {
	n, err := r.kind.delete(ctx, r.queries, id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", r.kind.name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored records.
func (r *Repository[R, N, P]) Count(ctx context.Context) (int64, error) {
	n, err := r.kind.count(ctx, r.queries)
	if err != nil {
		return 0, fmt.Errorf("counting %ss: %w", r.kind.name, err)
	}
	return n, nil
}

func (r *Repository[R, N, P]) notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s %s: %w", op, r.kind.name, err)
}

func (r *Repository[R, N, P]) listKey(rev int64) string {
	return fmt.Sprintf("content:%s:list:%d", r.kind.key, rev)
}
