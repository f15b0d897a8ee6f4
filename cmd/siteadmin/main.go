// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command siteadmin provisions the site database and admin accounts.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/olegiv/ciphercorp-site/internal/auth"
	"github.com/olegiv/ciphercorp-site/internal/logging"
	"github.com/olegiv/ciphercorp-site/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// cliEnv is the part of the site configuration the CLI reads. It does not
// need the session secret.
type cliEnv struct {
	DBPath        string `env:"SITE_DB_PATH" envDefault:"./data/site.db"`
	LogLevel      string `env:"SITE_LOG_LEVEL" envDefault:"warn"`
	AdminEmail    string `env:"SITE_ADMIN_EMAIL" envDefault:"admin@ciphercorp.com"`
	AdminPassword string `env:"SITE_ADMIN_PASSWORD"`
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dbPath string
		e      cliEnv
	)

	rootCmd := &cobra.Command{
		Use:   "siteadmin",
		Short: "Provision the Cipher Corp site database",
		Long: `siteadmin prepares the site database and manages admin accounts.

Passwords are read from standard input, never from flags, so they do not
end up in shell history or process listings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.Parse(&e); err != nil {
				return fmt.Errorf("parsing environment: %w", err)
			}
			if !cmd.Flags().Changed("db") {
				dbPath = e.DBPath
			}
			slog.SetDefault(logging.NewLogger(cmd.ErrOrStderr(), e.LogLevel))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default $SITE_DB_PATH or ./data/site.db)")

	open := func() (*sql.DB, error) {
		return openDB(dbPath)
	}

	rootCmd.AddCommand(
		newMigrateCmd(open),
		newSeedCmd(open, &e),
		newCreateAdminCmd(open),
		newSetPasswordCmd(open),
		newVersionCmd(),
	)
	return rootCmd
}

func newMigrateCmd(open func() (*sql.DB, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			v, err := store.SchemaVersion(db)
			if err != nil {
				return fmt.Errorf("reading schema version: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
			return nil
		},
	}
}

func newSeedCmd(open func() (*sql.DB, error), e *cliEnv) *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample content and the initial admin account",
		Long: `Seed inserts the sample team and projects when those tables are empty.

The admin account is created only when a password is supplied, either
through SITE_ADMIN_PASSWORD or on standard input with --password-stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = e.AdminEmail
			}

			password := e.AdminPassword
			if passwordStdin {
				var err error
				if password, err = readPassword(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			opts := store.SeedOptions{AdminEmail: email}
			if password != "" {
				hash, err := auth.HashPassword(password)
				if err != nil {
					return fmt.Errorf("hashing password: %w", err)
				}
				opts.AdminPasswordHash = hash
			}

			db, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := store.Seed(cmd.Context(), db, opts); err != nil {
				return fmt.Errorf("seeding database: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "seed data applied")
			if opts.AdminPasswordHash == "" {
				_, _ = fmt.Fprintln(out, "no admin password supplied, admin account skipped")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (default $SITE_ADMIN_EMAIL)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the admin password from standard input")
	return cmd
}

func newCreateAdminCmd(open func() (*sql.DB, error)) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Long: `Create an admin account. The password is read from the first line
of standard input.

Example:
  printf '%s\n' "$PASSWORD" | siteadmin create-admin --email admin@ciphercorp.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if err := checkEmail(email); err != nil {
				return err
			}

			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}

			db, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			admin, err := createAdmin(cmd.Context(), store.New(db), email, hash)
			if err != nil {
				return err
			}

			slog.Info("admin created", "admin_id", admin.ID, "email", admin.Email)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Email, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (required)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newSetPasswordCmd(open func() (*sql.DB, error)) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Replace an admin's password",
		Long: `Replace an admin's password. The new password is read from the first
line of standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)

			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}

			db, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			queries := store.New(db)
			admin, err := queries.GetAdminByEmail(cmd.Context(), email)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("no admin with email %q", email)
				}
				return fmt.Errorf("loading admin: %w", err)
			}

			if _, err := queries.UpdateAdminPassword(cmd.Context(), store.UpdateAdminPasswordParams{
				PasswordHash: hash,
				UpdatedAt:    time.Now().UTC(),
				ID:           admin.ID,
			}); err != nil {
				return fmt.Errorf("updating password: %w", err)
			}

			slog.Info("admin password changed", "admin_id", admin.ID)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", admin.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (required)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "siteadmin %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		},
	}
}

// openDB opens the database, creating its directory, and applies migrations.
func openDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := store.NewDB(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

func createAdmin(ctx context.Context, q *store.Queries, email, hash string) (store.Admin, error) {
	if _, err := q.GetAdminByEmail(ctx, email); err == nil {
		return store.Admin{}, fmt.Errorf("admin %q already exists", email)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return store.Admin{}, fmt.Errorf("checking existing admin: %w", err)
	}

	now := time.Now().UTC()
	admin, err := q.CreateAdmin(ctx, store.CreateAdminParams{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return store.Admin{}, fmt.Errorf("creating admin: %w", err)
	}
	return admin, nil
}

// readPassword reads the first line of r. Empty passwords are rejected.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	if len(password) > auth.MaxPasswordBytes {
		return "", fmt.Errorf("password must be at most %d bytes", auth.MaxPasswordBytes)
	}
	return password, nil
}

func checkEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email %q", email)
	}
	return nil
}
