// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultAdminEmail is the admin account created by seeding unless overridden.
const DefaultAdminEmail = "admin@ciphercorp.com"

// SeedOptions controls what Seed creates.
type SeedOptions struct {
	// AdminEmail is the login for the seeded admin. Defaults to DefaultAdminEmail.
	AdminEmail string
	// AdminPasswordHash is the already-hashed password. The admin is skipped when empty.
	AdminPasswordHash string
}

// Seed creates the initial team, projects and admin account.
// Each part is skipped when it already has data, so Seed is safe to run on every start.
func Seed(ctx context.Context, db *sql.DB, opts SeedOptions) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := New(db).WithTx(tx)
	now := time.Now().UTC()

	if err := seedTeam(ctx, queries, now); err != nil {
		return err
	}
	if err := seedProjects(ctx, queries, now); err != nil {
		return err
	}
	if err := seedAdmin(ctx, queries, opts, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	return nil
}

func seedTeam(ctx context.Context, queries *Queries, now time.Time) error {
	count, err := queries.CountTeamMembers(ctx)
	if err != nil {
		return fmt.Errorf("counting team members: %w", err)
	}
	if count > 0 {
		slog.Info("team members already exist, skipping seed", "count", count)
		return nil
	}

	for _, m := range seedTeamMembers {
		m.ID = uuid.NewString()
		m.CreatedAt = now
		m.UpdatedAt = now
		if _, err := queries.CreateTeamMember(ctx, m); err != nil {
			return fmt.Errorf("seeding team member %q: %w", m.Name, err)
		}
	}
	slog.Info("seeded team members", "count", len(seedTeamMembers))
	return nil
}

func seedProjects(ctx context.Context, queries *Queries, now time.Time) error {
	count, err := queries.CountProjects(ctx)
	if err != nil {
		return fmt.Errorf("counting projects: %w", err)
	}
	if count > 0 {
		slog.Info("projects already exist, skipping seed", "count", count)
		return nil
	}

	for _, p := range seedProjectList {
		p.ID = uuid.NewString()
		p.CreatedAt = now
		p.UpdatedAt = now
		if _, err := queries.CreateProject(ctx, p); err != nil {
			return fmt.Errorf("seeding project %q: %w", p.Title, err)
		}
	}
	slog.Info("seeded projects", "count", len(seedProjectList))
	return nil
}

func seedAdmin(ctx context.Context, queries *Queries, opts SeedOptions, now time.Time) error {
	email := opts.AdminEmail
	if email == "" {
		email = DefaultAdminEmail
	}

	if opts.AdminPasswordHash == "" {
		slog.Warn("no admin password configured, skipping admin seed", "email", email)
		return nil
	}

	_, err := queries.GetAdminByEmail(ctx, email)
	if err == nil {
		slog.Info("admin already exists, skipping seed", "email", email)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin: %w", err)
	}

	admin, err := queries.CreateAdmin(ctx, CreateAdminParams{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: opts.AdminPasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	slog.Info("created admin account", "id", admin.ID, "email", admin.Email)
	return nil
}

var seedTeamMembers = []CreateTeamMemberParams{
	{
		Name:      "AmirSaeed AryanMehr",
		Role:      "CEO & ML Engineer",
		Bio:       "AmirSaeed is the visionary founder of Cipher Corp with over 10 years of experience in machine learning and artificial intelligence. He leads the company's strategic direction and oversees all ML initiatives.",
		Instagram: "https://instagram.com/amirsaeed",
		Linkedin:  "https://linkedin.com/in/amirsaeed",
		Twitter:   "https://x.com/amirsaeed",
		Email:     "amirsaeed@ciphercorp.com",
	},
	{
		Name:      "Illya Steki",
		Role:      "CTO & Data Architect",
		Bio:       "Illya brings deep expertise in distributed systems and data architecture. He's responsible for building scalable infrastructure that powers our ML pipelines and ensures data integrity across all projects.",
		Instagram: "https://instagram.com/illyasteki",
		Linkedin:  "https://linkedin.com/in/illyasteki",
		Twitter:   "https://x.com/illyasteki",
		Email:     "illya@ciphercorp.com",
	},
	{
		Name:      "Alireza Darparesh",
		Role:      "Lead Data Scientist",
		Bio:       "Alireza specializes in statistical modeling and predictive analytics. With a PhD in Applied Mathematics, he transforms complex business problems into elegant data-driven solutions.",
		Instagram: "https://instagram.com/alirezad",
		Linkedin:  "https://linkedin.com/in/alirezad",
		Twitter:   "https://x.com/alirezad",
		Email:     "alireza@ciphercorp.com",
	},
	{
		Name:      "Abolfazl FarazNejad",
		Role:      "Senior Software Engineer",
		Bio:       "Abolfazl is our full-stack wizard who bridges the gap between ML models and production systems. He ensures our solutions are not just smart, but also fast, reliable, and user-friendly.",
		Instagram: "https://instagram.com/abolfazlf",
		Linkedin:  "https://linkedin.com/in/abolfazlf",
		Twitter:   "https://x.com/abolfazlf",
		Email:     "abolfazl@ciphercorp.com",
	},
}

var seedProjectList = []CreateProjectParams{
	{
		Title:       "Neural Vision Pro",
		Description: "Advanced computer vision system for real-time object detection and tracking in industrial environments.",
		Content: `Neural Vision Pro is our flagship computer vision solution designed for industrial automation. The system uses state-of-the-art deep learning models to detect, classify, and track objects in real-time with 99.7% accuracy.

**Key Features:**

- Real-time processing at 60 FPS
- Multi-camera support with synchronized tracking
- Custom model training for specific use cases
- Edge deployment capabilities
- Integration with existing SCADA systems

The system has been deployed in over 50 manufacturing facilities worldwide, reducing quality control costs by an average of 40%.`,
		ImageUrl: "/images/neural-vision.jpg",
		Tags:     "Computer Vision,Deep Learning,Industrial AI",
	},
	{
		Title:       "PredictFlow Analytics",
		Description: "Predictive analytics platform for demand forecasting and inventory optimization.",
		Content: `PredictFlow Analytics is an enterprise-grade predictive analytics platform that helps businesses forecast demand and optimize inventory levels with unprecedented accuracy.

**Key Features:**

- Multi-variate time series forecasting
- Automatic feature engineering
- Explainable AI for business insights
- Real-time dashboard and alerts
- API-first architecture for easy integration

Our clients have reported an average 25% reduction in inventory costs and 15% improvement in service levels after implementing PredictFlow.`,
		ImageUrl: "/images/predictflow.jpg",
		Tags:     "Predictive Analytics,Time Series,Forecasting",
	},
	{
		Title:       "DataMesh Platform",
		Description: "Unified data platform for seamless data integration, transformation, and governance.",
		Content: `DataMesh Platform is a comprehensive data management solution that enables organizations to build a unified, governed data ecosystem.

**Key Features:**

- Automated data pipeline orchestration
- Built-in data quality monitoring
- Self-service data catalog
- Role-based access control
- Support for 100+ data connectors

DataMesh has helped enterprises reduce data preparation time by 60% while ensuring compliance with data governance policies.`,
		ImageUrl: "/images/datamesh.jpg",
		Tags:     "Data Engineering,ETL,Data Governance",
	},
}
