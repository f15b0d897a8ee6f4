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

// NewProject is the input for creating a project.
type NewProject struct {
	Title       string
	Description string
	Content     string
	ImageURL    string
	Tags        string
}

// ProjectPatch holds the project fields to change. Absent fields are kept;
// a present empty optional field is cleared.
type ProjectPatch struct {
	Title       util.Optional[string]
	Description util.Optional[string]
	Content     util.Optional[string]
	ImageURL    util.Optional[string]
	Tags        util.Optional[string]
}

// Projects is the repository for portfolio projects.
type Projects = Repository[store.Project, NewProject, ProjectPatch]

var (
	projectTitle       = fieldRule{name: "title", label: "Title", required: true, max: MaxTitleLength}
	projectDescription = fieldRule{name: "description", label: "Description", required: true, max: MaxDescriptionLength}
	projectContent     = fieldRule{name: "content", label: "Content", max: MaxContentLength}
	projectImageURL    = fieldRule{name: "imageUrl", label: "Image URL", max: MaxURLLength}
	projectTags        = fieldRule{name: "tags", label: "Tags", max: MaxTagsLength, tags: true}
)

// NewProjects returns the project repository. c may be nil to disable the
// list cache; ttl is how long a cached list lives.
func NewProjects(db store.DBTX, c cache.Cache, ttl time.Duration) *Projects {
	return newRepository(db, c, ttl, kind[store.Project, NewProject, ProjectPatch]{
		name:       "project",
		key:        "projects",
		table:      store.RevisionProjects,
		checkNew:   CheckNewProject,
		checkPatch: CheckProjectPatch,
		create:     createProject,
		get: func(ctx context.Context, q *store.Queries, id string) (store.Project, error) {
			return q.GetProject(ctx, id)
		},
		list: func(ctx context.Context, q *store.Queries) ([]store.Project, error) {
			return q.ListProjects(ctx)
		},
		update: updateProject,
		delete: func(ctx context.Context, q *store.Queries, id string) (int64, error) {
			return q.DeleteProject(ctx, id)
		},
		count: func(ctx context.Context, q *store.Queries) (int64, error) {
			return q.CountProjects(ctx)
		},
	})
}

// CheckNewProject trims every field and reports missing or over-long values.
func CheckNewProject(in NewProject) (NewProject, FieldErrors) {
	errs := FieldErrors{}
	in.Title = projectTitle.check(in.Title, errs)
	in.Description = projectDescription.check(in.Description, errs)
	in.Content = projectContent.check(in.Content, errs)
	in.ImageURL = projectImageURL.check(in.ImageURL, errs)
	in.Tags = projectTags.check(in.Tags, errs)
	return in, errs
}

// CheckProjectPatch trims the present fields. Title and description, when
// present, must not be empty.
func CheckProjectPatch(p ProjectPatch) (ProjectPatch, FieldErrors) {
	errs := FieldErrors{}
	p.Title = projectTitle.checkOptional(p.Title, errs)
	p.Description = projectDescription.checkOptional(p.Description, errs)
	p.Content = projectContent.checkOptional(p.Content, errs)
	p.ImageURL = projectImageURL.checkOptional(p.ImageURL, errs)
	p.Tags = projectTags.checkOptional(p.Tags, errs)
	return p, errs
}

func createProject(ctx context.Context, q *store.Queries, id string, in NewProject, now time.Time) (store.Project, error) {
	return q.CreateProject(ctx, store.CreateProjectParams{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		ImageUrl:    in.ImageURL,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func updateProject(ctx context.Context, q *store.Queries, id string, p ProjectPatch, now time.Time) (store.Project, error) {
	return q.UpdateProject(ctx, store.UpdateProjectParams{
		Title:       util.NullStringFromOptional(p.Title),
		Description: util.NullStringFromOptional(p.Description),
		Content:     util.NullStringFromOptional(p.Content),
		ImageUrl:    util.NullStringFromOptional(p.ImageURL),
		Tags:        util.NullStringFromOptional(p.Tags),
		UpdatedAt:   now,
		ID:          id,
	})
}
