package migration

import (
	"context"

	"modeleval/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createEvaluationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create evaluations table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createEvaluationsTable(ctx context.Context, db *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS evaluations (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			predictor_key TEXT NOT NULL,
			target_key TEXT NOT NULL,
			buy_threshold DOUBLE PRECISION NOT NULL DEFAULT 0,
			sell_threshold DOUBLE PRECISION NOT NULL DEFAULT 0,
			theta DOUBLE PRECISION NOT NULL DEFAULT 0,
			report JSONB NOT NULL,
			predictor_summary JSONB,
			target_summary JSONB,
			runtime_ms BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_source ON evaluations (source)`,
	}
	for _, q := range queries {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
