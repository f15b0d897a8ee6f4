// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ciphercorp-site/internal/cache"
	"github.com/olegiv/ciphercorp-site/internal/store"
	"github.com/olegiv/ciphercorp-site/internal/testutil"
	"github.com/olegiv/ciphercorp-site/internal/util"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	return db
}

func newTestCache(t *testing.T) *cache.MemoryCache {
	t.Helper()
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func titles(ps []store.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestProjects_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	repo := NewProjects(newTestDB(t), nil, 0)

	created, err := repo.Create(ctx, NewProject{Title: "Neural Vision", Description: "Edge inference"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(0), created.SortOrder)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Neural Vision", got.Title)
	assert.Equal(t, "Edge inference", got.Description)
	assert.Equal(t, created.SortOrder, got.SortOrder)
}

func TestProjects_Scenario(t *testing.T) {
	ctx := context.Background()
	repo := NewProjects(newTestDB(t), nil, 0)

	a, err := repo.Create(ctx, NewProject{Title: "A", Description: "B"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), a.SortOrder)

	c, err := repo.Create(ctx, NewProject{Title: "C", Description: "D"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.SortOrder)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, titles(list))

	require.NoError(t, repo.Delete(ctx, a.ID))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, titles(list))

	_, err = repo.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjects_OrderStrictlyIncreases(t *testing.T) {
	ctx := context.Background()
	repo := NewProjects(newTestDB(t), nil, 0)

	var ids []string
	var last int64 = -1
	for i := 0; i < 5; i++ {
		p, err := repo.Create(ctx, NewProject{Title: "P", Description: "D"})
		require.NoError(t, err)
		assert.Greater(t, p.SortOrder, last)
		last = p.SortOrder
		ids = append(ids, p.ID)

		if i == 2 {
			// Deleting an earlier record leaves a gap and renumbers nothing.
			require.NoError(t, repo.Delete(ctx, ids[0]))
		}
	}
	assert.Equal(t, int64(4), last)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	orders := make([]int64, len(list))
	for i, p := range list {
		orders[i] = p.SortOrder
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, orders)
}

func TestProjects_ConcurrentCreatesGetDistinctOrders(t *testing.T) {
	ctx := context.Background()
	repo := NewProjects(newTestDB(t), nil, 0)

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, NewProject{Title: "T", Description: "D"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, n)
	seen := map[int64]bool{}
	for i, p := range list {
		assert.False(t, seen[p.SortOrder], "order %d assigned twice", p.SortOrder)
		seen[p.SortOrder] = true
		assert.Equal(t, int64(i), p.SortOrder)
	}
}

func TestProjects_CreateTrimsAndValidates(t *testing.T) {
	ctx := context.Background()
	repo := NewProjects(newTestDB(t), nil, 0)

	p, err := repo.Create(ctx, NewProject{
		Title:       "  Padded  ",
		Description: "\tDesc\n",
		Tags:        " AI , ,Security ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Padded", p.Title)
	assert.Equal(t, "Desc", p.Description)
	assert.Equal(t, "AI,Security", p.Tags)

	tests := []struct {
		name   string
		in     NewProject
		fields []string
	}{
		{"both missing", NewProject{}, []string{"title", "description"}},
		{"title blank", NewProject{Title: "   ", Description: "D"}, []string{"title"}},
		{"description blank", NewProject{Title: "T", Description: "\n"}, []string{"description"}},
		{"title too long", NewProject{Title: strings.Repeat("x", MaxTitleLength+1), Description: "D"}, []string{"title"}},
		{"image url too long", NewProject{Title: "T", Description: "D", ImageURL: strings.Repeat("u", MaxURLLength+1)}, []string{"imageUrl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tt.in)
			ve, ok := IsValidation(err)
			require.True(t, ok, "want ValidationError, got %v", err)
			for _, f := range tt.fields {
				assert.Contains(t, ve.Fields, f)
			}
			assert.Len(t, ve.Fields, len(tt.fields))
		})
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "rejected creates must not persist")
}

func TestProjects_TitleLimitCountsCharacters(t *testing.T) {
	repo := NewProjects(newTestDB(t), nil, 0)

	_, err := repo.Create(context.Background(), NewProject{
		Title:       strings.Repeat("é", MaxTitleLength),
		Description: "D",
	})
	assert.NoError(t, err)
}

func TestProjects_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewProjects(newTestDB(t), nil, 0)

	orig, err := repo.Create(ctx, NewProject{
		Title: "Old", Description: "Old desc", ImageURL: "https://img/x.png", Tags: "a,b",
	})
	require.NoError(t, err)

	t.Run("only title", func(t *testing.T) {
		p, err := repo.Update(ctx, orig.ID, ProjectPatch{Title: util.Some(" New ")})
		require.NoError(t, err)
		assert.Equal(t, "New", p.Title)
		assert.Equal(t, "Old desc", p.Description)
		assert.Equal(t, "https://img/x.png", p.ImageUrl)
		assert.Equal(t, "a,b", p.Tags)
		assert.Equal(t, orig.SortOrder, p.SortOrder)
	})

	t.Run("both required fields", func(t *testing.T) {
		p, err := repo.Update(ctx, orig.ID, ProjectPatch{
			Title:       util.Some("T2"),
			Description: util.Some("D2"),
		})
		require.NoError(t, err)
		assert.Equal(t, "T2", p.Title)
		assert.Equal(t, "D2", p.Description)
	})

	t.Run("empty optional clears", func(t *testing.T) {
		p, err := repo.Update(ctx, orig.ID, ProjectPatch{Tags: util.Some("")})
		require.NoError(t, err)
		assert.Equal(t, "", p.Tags)
		assert.Equal(t, "https://img/x.png", p.ImageUrl)
	})

	t.Run("empty required rejected", func(t *testing.T) {
		_, err := repo.Update(ctx, orig.ID, ProjectPatch{
			Title:    util.Some("  "),
			ImageURL: util.Some("https://img/y.png"),
		})
		ve, ok := IsValidation(err)
		require.True(t, ok, "want ValidationError, got %v", err)
		assert.Contains(t, ve.Fields, "title")

		got, err := repo.Get(ctx, orig.ID)
		require.NoError(t, err)
		assert.Equal(t, "T2", got.Title)
		assert.Equal(t, "https://img/x.png", got.ImageUrl, "failed update must not apply other fields")
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.Update(ctx, "no-such-id", ProjectPatch{Title: util.Some("X")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProjects_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	repo := NewProjects(newTestDB(t), nil, 0)

	p, err := repo.Create(ctx, NewProject{Title: "T", Description: "D"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrNotFound)
}

func TestProjects_ListEmptyIsNotNil(t *testing.T) {
	for name, c := range map[string]cache.Cache{"uncached": nil, "cached": newTestCache(t)} {
		t.Run(name, func(t *testing.T) {
			repo := NewProjects(newTestDB(t), c, time.Minute)
			list, err := repo.List(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, list)
			assert.Empty(t, list)
		})
	}
}

func TestProjects_ListCacheFollowsWrites(t *testing.T) {
	ctx := context.Background()
	mem := newTestCache(t)
	repo := NewProjects(newTestDB(t), mem, time.Minute)

	first, err := repo.Create(ctx, NewProject{Title: "First", Description: "D"})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"First"}, titles(list))

	_, err = mem.Get(ctx, "content:projects:list:1")
	require.NoError(t, err, "list should be cached under the current revision")

	_, err = repo.Create(ctx, NewProject{Title: "Second", Description: "D"})
	require.NoError(t, err)
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second"}, titles(list))

	_, err = repo.Update(ctx, first.ID, ProjectPatch{Title: util.Some("Renamed")})
	require.NoError(t, err)
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Renamed", "Second"}, titles(list))

	require.NoError(t, repo.Delete(ctx, first.ID))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Second"}, titles(list))
}

// gatedCache holds the first Set until release is closed.
type gatedCache struct {
	cache.Cache
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedCache(t *testing.T) *gatedCache {
	return &gatedCache{
		Cache:   newTestCache(t),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gatedCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.Cache.Set(ctx, key, value, ttl)
}

func TestProjects_SlowListDoesNotHideLaterCreate(t *testing.T) {
	ctx := context.Background()
	gc := newGatedCache(t)
	repo := NewProjects(newTestDB(t), gc, time.Minute)

	_, err := repo.Create(ctx, NewProject{Title: "A", Description: "D"})
	require.NoError(t, err)

	// This List reads [A] and then stalls while caching it.
	done := make(chan error, 1)
	go func() {
		_, err := repo.List(ctx)
		done <- err
	}()
	<-gc.entered

	_, err = repo.Create(ctx, NewProject{Title: "C", Description: "D"})
	require.NoError(t, err)

	close(gc.release)
	require.NoError(t, <-done)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, titles(list))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(list)), n)
}

func TestProjects_SlowListDoesNotResurrectDelete(t *testing.T) {
	ctx := context.Background()
	gc := newGatedCache(t)
	repo := NewProjects(newTestDB(t), gc, time.Minute)

	a, err := repo.Create(ctx, NewProject{Title: "A", Description: "D"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, NewProject{Title: "B", Description: "D"})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := repo.List(ctx)
		done <- err
	}()
	<-gc.entered

	require.NoError(t, repo.Delete(ctx, a.ID))

	close(gc.release)
	require.NoError(t, <-done)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, titles(list))
}

func TestProjects_ListSeesWritesFromOtherWriters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	mem := newTestCache(t)

	// Two repositories over one database and one cache stand in for two
	// site processes sharing Redis.
	site := NewProjects(db, mem, time.Minute)
	other := NewProjects(db, mem, time.Minute)

	_, err := site.Create(ctx, NewProject{Title: "Mine", Description: "D"})
	require.NoError(t, err)
	list, err := site.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = other.Create(ctx, NewProject{Title: "Theirs", Description: "D"})
	require.NoError(t, err)
	list, err = site.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mine", "Theirs"}, titles(list))

	// A write that bypasses the repository entirely, as seeding does.
	_, err = db.ExecContext(ctx,
		`INSERT INTO projects (id, title, description, sort_order) VALUES ('raw-1', 'Seeded', 'D', 9)`)
	require.NoError(t, err)
	list, err = site.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mine", "Theirs", "Seeded"}, titles(list))
}

func TestProjects_ClosedCacheFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	_ = mem.Close()
	repo := NewProjects(newTestDB(t), mem, time.Minute)

	_, err := repo.Create(ctx, NewProject{Title: "T", Description: "D"})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTeam_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewTeam(newTestDB(t), nil, 0)
	assert.Equal(t, "team member", repo.Name())

	m, err := repo.Create(ctx, NewTeamMember{
		Name:    " Alex Chen ",
		Role:    "CEO",
		Twitter: "https://twitter.com/alex",
		Email:   "alex@ciphercorp.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alex Chen", m.Name)
	assert.Equal(t, int64(0), m.SortOrder)

	updated, err := repo.Update(ctx, m.ID, TeamMemberPatch{
		Role:    util.Some("Chief Executive"),
		Twitter: util.Some(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alex Chen", updated.Name)
	assert.Equal(t, "Chief Executive", updated.Role)
	assert.Equal(t, "", updated.Twitter)
	assert.Equal(t, "alex@ciphercorp.com", updated.Email)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, m.ID))
	_, err = repo.Get(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTeam_Validation(t *testing.T) {
	ctx := context.Background()
	repo := NewTeam(newTestDB(t), nil, 0)

	tests := []struct {
		name  string
		in    NewTeamMember
		field string
	}{
		{"missing name", NewTeamMember{Role: "CTO"}, "name"},
		{"missing role", NewTeamMember{Name: "Sam"}, "role"},
		{"bad email", NewTeamMember{Name: "Sam", Role: "CTO", Email: "not-an-email"}, "email"},
		{"display name email", NewTeamMember{Name: "Sam", Role: "CTO", Email: "Sam <sam@x.io>"}, "email"},
		{"name too long", NewTeamMember{Name: strings.Repeat("n", MaxNameLength+1), Role: "CTO"}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tt.in)
			ve, ok := IsValidation(err)
			require.True(t, ok, "want ValidationError, got %v", err)
			assert.Contains(t, ve.Fields, tt.field)
		})
	}

	m, err := repo.Create(ctx, NewTeamMember{Name: "Sam", Role: "CTO"})
	require.NoError(t, err)

	_, err = repo.Update(ctx, m.ID, TeamMemberPatch{Name: util.Some("")})
	_, ok := IsValidation(err)
	assert.True(t, ok, "empty name on update must fail, got %v", err)

	_, err = repo.Update(ctx, m.ID, TeamMemberPatch{Email: util.Some("bad")})
	_, ok = IsValidation(err)
	assert.True(t, ok, "invalid email on update must fail, got %v", err)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: FieldErrors{"title": "Title is required", "description": "Description is required"}}
	assert.Equal(t, "validation failed: description: Description is required; title: Title is required", err.Error())
}

func TestCheckProjectPatch_AbsentStaysAbsent(t *testing.T) {
	p, errs := CheckProjectPatch(ProjectPatch{Description: util.Some("  x  ")})
	assert.Empty(t, errs)
	assert.False(t, p.Title.Set)
	assert.Equal(t, util.Some("x"), p.Description)
}
