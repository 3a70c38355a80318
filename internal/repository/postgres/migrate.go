package postgres

import (
	"context"
	"fmt"

	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
)

// Migrations are embedded in order. Applied versions are recorded in
// schema_migrations so Migrate can run on every start.
var migrations = []struct {
	version int
	sql     string
}{
	{1, migration001Users},
	{2, migration002MoodEntries},
	{3, migration003Activities},
}

var migration001Users = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    username VARCHAR(50) UNIQUE NOT NULL,
    email VARCHAR(100) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    first_name VARCHAR(50) NOT NULL,
    age_range VARCHAR(20) NOT NULL DEFAULT '25-34',
    wellness_goals JSONB NOT NULL DEFAULT '[]'::jsonb,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

var migration002MoodEntries = `
CREATE TABLE IF NOT EXISTS mood_entries (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    entry_date DATE NOT NULL,
    entry_time TIME NOT NULL DEFAULT CURRENT_TIME,
    mood_value INTEGER NOT NULL CHECK (mood_value BETWEEN 1 AND 10),
    mood_label VARCHAR(50) NOT NULL,
    quick_note TEXT NOT NULL DEFAULT '',
    sentiment_score DOUBLE PRECISION,
    sentiment_label VARCHAR(20),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, entry_date)
);
CREATE INDEX IF NOT EXISTS idx_mood_entries_user_date ON mood_entries(user_id, entry_date DESC);
`

var migration003Activities = `
CREATE TABLE IF NOT EXISTS activities (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    entry_date DATE NOT NULL,
    sleep_hours NUMERIC(4,2) CHECK (sleep_hours BETWEEN 0 AND 24),
    exercise_minutes INTEGER NOT NULL DEFAULT 0,
    social_interaction BOOLEAN NOT NULL DEFAULT FALSE,
    caffeine_intake INTEGER NOT NULL DEFAULT 0,
    work_stress_level INTEGER NOT NULL DEFAULT 5 CHECK (work_stress_level BETWEEN 0 AND 10),
    UNIQUE (user_id, entry_date)
);
`

// Migrate applies every migration not yet recorded
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		applied, err := db.applyMigration(ctx, m.version, m.sql)
		if err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		if applied {
			logger.Info("Applied migration", logger.Int("version", m.version))
		}
	}
	return nil
}

func (db *DB) applyMigration(ctx context.Context, version int, sql string) (bool, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", version,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check version: %w", err)
	}
	if exists {
		return false, nil
	}

	if _, err := tx.Exec(ctx, sql); err != nil {
		return false, fmt.Errorf("exec: %w", err)
	}
	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		return false, fmt.Errorf("record version: %w", err)
	}

	return true, tx.Commit(ctx)
}
