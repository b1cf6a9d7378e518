package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables the snapshot store and change log need.
// The schema is two generic tables, so idempotent CREATEs at startup replace
// a migration directory.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	log.Println("[Database] ensuring schema...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			family    TEXT  NOT NULL,
			record_id TEXT  NOT NULL,
			position  INT   NOT NULL,
			payload   JSONB NOT NULL,
			PRIMARY KEY (family, record_id)
		)`,
		`CREATE TABLE IF NOT EXISTS change_log (
			id            SERIAL PRIMARY KEY,
			action        TEXT NOT NULL,
			record_type   TEXT NOT NULL,
			record_id     TEXT NOT NULL,
			field_changed TEXT,
			old_value     TEXT,
			new_value     TEXT,
			logged_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_change_log_record
			ON change_log (record_type, record_id)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	log.Println("[Database] schema ready")
	return nil
}
