package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/trainerdesk/coach-api/internal/infrastructure/config"
	"github.com/trainerdesk/coach-api/internal/infrastructure/db/sqlstore"
	"github.com/trainerdesk/coach-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "Trainer API for workout templates, clients and progress logs",
	Long: `coach serves the trainer REST API.

Configuration comes from the environment:

  PORT            listen port (3001)
  ENV             development | test | production
  JWT_SECRET      token signing secret (required)
  DATABASE_URL    PostgreSQL DSN; SQLite is used when empty
  SQLITE_DB_FILE  SQLite path (./db/dev.sqlite3)
  REDIS_ADDR      enables assignment idempotency when set`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// bootstrap loads configuration, initialises the global logger and opens
// the migrated store. The caller owns the returned handle.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, *sqlx.DB, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "coach-api",
	})

	db, err := sqlstore.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, log, nil, err
	}
	if err := sqlstore.Migrate(db); err != nil {
		_ = db.Close()
		return nil, log, nil, fmt.Errorf("apply migrations: %w", err)
	}

	return cfg, log, db, nil
}
