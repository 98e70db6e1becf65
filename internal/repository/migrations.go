package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "000_create_profiles",
		sql: `
			CREATE TABLE IF NOT EXISTS profiles (
				id           UUID PRIMARY KEY,
				display_name VARCHAR(100) NOT NULL,
				email        VARCHAR(255),
				height_cm    NUMERIC(5,1),
				avatar_url   TEXT,
				push_token   TEXT,
				is_admin     BOOLEAN NOT NULL DEFAULT FALSE,
				token        TEXT NOT NULL,
				created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		version: "001_create_weight_entries",
		sql: `
			CREATE TABLE IF NOT EXISTS weight_entries (
				id                UUID PRIMARY KEY,
				user_id           UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
				weight_lb         NUMERIC(6,2) NOT NULL,
				percentage_change NUMERIC(7,4) NOT NULL,
				note              TEXT,
				is_private        BOOLEAN NOT NULL DEFAULT FALSE,
				created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_weight_entries_user_created
				ON weight_entries (user_id, created_at)`,
	},
	{
		version: "002_create_groups",
		sql: `
			CREATE TABLE IF NOT EXISTS groups (
				id                UUID PRIMARY KEY,
				name              VARCHAR(100) NOT NULL,
				invite_code       VARCHAR(6) NOT NULL UNIQUE,
				start_date        TIMESTAMPTZ,
				end_date          TIMESTAMPTZ,
				is_team_challenge BOOLEAN NOT NULL DEFAULT FALSE,
				total_weight_lost NUMERIC(8,2),
				created_by        UUID NOT NULL REFERENCES profiles(id),
				created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		version: "003_create_teams",
		sql: `
			CREATE TABLE IF NOT EXISTS teams (
				id       UUID PRIMARY KEY,
				group_id UUID NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
				name     VARCHAR(100) NOT NULL,
				color    VARCHAR(20) NOT NULL DEFAULT ''
			)`,
	},
	{
		version: "004_create_memberships",
		sql: `
			CREATE TABLE IF NOT EXISTS memberships (
				id        UUID PRIMARY KEY,
				group_id  UUID NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
				user_id   UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
				team_id   UUID REFERENCES teams(id) ON DELETE SET NULL,
				joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (group_id, user_id)
			)`,
	},
	{
		version: "005_create_messages",
		sql: `
			CREATE TABLE IF NOT EXISTS messages (
				id         UUID PRIMARY KEY,
				group_id   UUID NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
				user_id    UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
				body       TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_messages_group_created
				ON messages (group_id, created_at)`,
	},
	{
		version: "006_create_reminder_logs",
		sql: `
			CREATE TABLE IF NOT EXISTS reminder_logs (
				id       UUID PRIMARY KEY,
				group_id UUID NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
				user_id  UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
				sent_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_reminder_logs_pair_sent
				ON reminder_logs (group_id, user_id, sent_at)`,
	},
}

// RunMigrations applies pending schema migrations in order, recording each
// applied version so restarts are no-ops.
func RunMigrations(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists bool
		err := db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`,
			m.version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.version, err)
		}
		if exists {
			continue
		}

		if _, err := db.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.version, err)
		}
		if _, err := db.Exec(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1)`, m.version,
		); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.version, err)
		}
		log.Info().Str("version", m.version).Msg("Migration applied")
	}

	return nil
}
