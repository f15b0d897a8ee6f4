// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"

	"github.com/olegiv/ciphercorp-site/internal/auth"
	"github.com/olegiv/ciphercorp-site/internal/cache"
	"github.com/olegiv/ciphercorp-site/internal/config"
	"github.com/olegiv/ciphercorp-site/internal/content"
	"github.com/olegiv/ciphercorp-site/internal/logging"
	"github.com/olegiv/ciphercorp-site/internal/render"
	"github.com/olegiv/ciphercorp-site/internal/session"
	"github.com/olegiv/ciphercorp-site/internal/store"
	"github.com/olegiv/ciphercorp-site/internal/version"
	"github.com/olegiv/ciphercorp-site/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// application holds the services the router is built from.
type application struct {
	cfg      *config.Config
	db       *sql.DB
	sessions *scs.SessionManager
	auth     *auth.Authenticator
	projects *content.Projects
	team     *content.Team
	renderer *render.Renderer
	cache    cache.Cache
	version  version.Info
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Cipher Corp site server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_SESSION_SECRET    Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_DB_PATH           SQLite database path (default: ./data/site.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_REDIS_URL         Redis URL for the content list cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_DO_SEED           Seed sample content and the admin account (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_ADMIN_PASSWORD    Password for the seeded admin (only read when seeding)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("site %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)
	slog.Info("configuration loaded", "config", cfg)

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	ctx := context.Background()
	if cfg.DoSeed {
		if err := seed(ctx, db, cfg); err != nil {
			return err
		}
	}
	slog.Info("database ready")

	sessionManager := session.New(db, cfg.IsDevelopment(), cfg.SessionLifetime)
	defer session.StopCleanup(sessionManager)

	cacheResult, err := cache.New(cache.Config{
		RedisURL:         cfg.RedisURL,
		Prefix:           cfg.CachePrefix,
		DefaultTTL:       cfg.CacheTTL,
		MaxSize:          cfg.CacheMaxSize,
		CleanupInterval:  time.Minute,
		FallbackToMemory: true,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() { _ = cacheResult.Cache.Close() }()
	slog.Info("cache initialized", "backend", cacheResult.BackendType, "fallback", cacheResult.IsFallback)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	app := &application{
		cfg:      cfg,
		db:       db,
		sessions: sessionManager,
		auth:     auth.NewAuthenticator(db, sessionManager),
		projects: content.NewProjects(db, cacheResult.Cache, cfg.CacheTTL),
		team:     content.NewTeam(db, cacheResult.Cache, cfg.CacheTTL),
		renderer: renderer,
		cache:    cacheResult.Cache,
		version:  versionInfo,
	}

	router, err := app.routes()
	if err != nil {
		return fmt.Errorf("building routes: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// seed loads the sample content and, when a password is configured, the
// admin account. The password is hashed here and never logged.
func seed(ctx context.Context, db *sql.DB, cfg *config.Config) error {
	opts := store.SeedOptions{AdminEmail: cfg.AdminEmail}
	if cfg.AdminPassword != "" {
		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("hashing admin password: %w", err)
		}
		opts.AdminPasswordHash = hash
	} else {
		slog.Warn("SITE_ADMIN_PASSWORD not set, skipping admin account seed")
	}

	if err := store.Seed(ctx, db, opts); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	slog.Info("seed data applied", "admin_email", opts.AdminEmail)
	return nil
}
