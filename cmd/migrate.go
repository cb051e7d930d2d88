// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/velocityonboard/onboard-service/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status|check] [version]",
	Short: "Run database migrations",
	Long: `Run the embedded database migrations against the onboarding schema.
"down" without a version rolls back the latest migration, with a version it
rolls back to that version.`,
	Args: migrateArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		command, version := "up", int64(-1)
		if len(args) > 0 {
			command = args[0]
		}
		if len(args) > 1 {
			version, _ = strconv.ParseInt(args[1], 10, 64)
		}

		dsn, _ := cmd.Flags().GetString("dsn")
		format, _ := cmd.Flags().GetString("format")

		m, err := newMigrator(cmd.Context(), dsn, format, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		switch command {
		case "down":
			return m.down(cmd.Context(), version)
		case "status":
			return m.status(cmd.Context())
		case "check":
			return m.check(cmd.Context())
		}
		return m.up(cmd.Context())
	},
}

func migrateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(2)(cmd, args); err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "up", "down", "status", "check":
	default:
		return fmt.Errorf("unknown migrate command %q", args[0])
	}

	if len(args) == 2 {
		if args[0] != "down" {
			return fmt.Errorf("only down accepts a version, got %q", args)
		}
		if v, err := strconv.ParseInt(args[1], 10, 64); err != nil || v < 0 {
			return fmt.Errorf("invalid version %q", args[1])
		}
	}

	return nil
}

func init() {
	migrateCmd.Flags().String("dsn", os.Getenv("DSN"), "PostgreSQL DSN connection string, defaults to $DSN")
	migrateCmd.Flags().StringP("format", "f", "text", "Output format (text or json)")

	rootCmd.AddCommand(migrateCmd)
}

type migrator struct {
	provider *goose.Provider
	json     bool
	out      io.Writer
}

func newMigrator(ctx context.Context, dsn, format string, out io.Writer) (*migrator, error) {
	if dsn == "" {
		return nil, fmt.Errorf("a DSN is required, pass --dsn or set DSN")
	}
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	db := stdlib.OpenDB(*config)
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	var opts []goose.ProviderOption
	if format == "json" {
		opts = append(opts, goose.WithLogger(goose.NopLogger()))
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return &migrator{provider: provider, json: format == "json", out: out}, nil
}

func (m *migrator) encode(v interface{}) error {
	return json.NewEncoder(m.out).Encode(v)
}

func (m *migrator) applied(results []*goose.MigrationResult) error {
	if !m.json {
		for _, r := range results {
			fmt.Fprintf(m.out, "%s %s (%s)\n", r.Direction, r.Source.Path, r.Duration.Round(time.Millisecond))
		}
		return nil
	}
	if results == nil {
		results = []*goose.MigrationResult{}
	}
	return m.encode(map[string]interface{}{"applied": results})
}

func (m *migrator) up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return err
	}
	return m.applied(results)
}

func (m *migrator) down(ctx context.Context, version int64) error {
	if version >= 0 {
		results, err := m.provider.DownTo(ctx, version)
		if err != nil {
			return err
		}
		return m.applied(results)
	}

	result, err := m.provider.Down(ctx)
	if err != nil {
		return err
	}
	return m.applied([]*goose.MigrationResult{result})
}

func (m *migrator) status(ctx context.Context) error {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return err
	}
	if m.json {
		return m.encode(statuses)
	}

	fmt.Fprintf(m.out, "%-26s %s\n", "APPLIED AT", "MIGRATION")
	for _, s := range statuses {
		appliedAt := "pending"
		if s.State == goose.StateApplied {
			appliedAt = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(m.out, "%-26s %s\n", appliedAt, s.Source.Path)
	}
	return nil
}

// check fails when migrations are pending so it can gate deployments.
func (m *migrator) check(ctx context.Context) error {
	pending, err := m.provider.HasPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to check pending migrations: %w", err)
	}

	current, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read the database version: %w", err)
	}

	if m.json {
		state := "ok"
		if pending {
			state = "pending"
		}
		if err := m.encode(map[string]interface{}{"status": state, "version": current}); err != nil {
			return err
		}
	}

	if pending {
		return fmt.Errorf("migrations are pending, database is at version %d", current)
	}
	if !m.json {
		fmt.Fprintf(m.out, "Database is up to date (version %d)\n", current)
	}
	return nil
}
