package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration represents a database migration
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists every schema change in application order. Each statement
// must be safe to re-run.
var Migrations = []Migration{
	{
		Name: "create_documents",
		SQL: `
			CREATE TABLE IF NOT EXISTS documents (
				id UUID PRIMARY KEY,
				collection TEXT NOT NULL,
				data JSONB NOT NULL DEFAULT '{}'::jsonb,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
		`,
	},
	{
		Name: "index_documents_collection",
		SQL: `
			CREATE INDEX IF NOT EXISTS documents_collection_created_idx
			ON documents (collection, created_at);
		`,
	},
	{
		Name: "index_documents_start_date",
		SQL: `
			CREATE INDEX IF NOT EXISTS documents_start_date_idx
			ON documents (collection, (data->>'start_date') DESC NULLS LAST);
		`,
	},
	{
		Name: "create_export_jobs",
		SQL: `
			CREATE TABLE IF NOT EXISTS export_jobs (
				id UUID PRIMARY KEY,
				requested_by TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL,
				metadata JSONB DEFAULT '{}'::jsonb,
				html_path TEXT NOT NULL DEFAULT '',
				pdf_path TEXT NOT NULL DEFAULT '',
				error TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
		`,
	},
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}
