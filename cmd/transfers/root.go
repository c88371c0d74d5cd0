package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"transfers/internal/config"
	"transfers/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "transfers",
	Short:         "Reporting and analysis tools for course transfer rules",
	Long:          "Batch reporting tools for the curriculum office: rule descriptions,\ndepartment routing, and transfer statistics over the curriculum database.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// jobFunc is a run-to-completion batch job over the curriculum database.
type jobFunc func(ctx context.Context, logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) error

// runJob does the shared bootstrap: .env, config, logger, DB pool, and a
// context cancelled on SIGINT/SIGTERM.
func runJob(job jobFunc) error {
	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found")
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return fmt.Errorf("open database pool: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database %s: %w", cfg.DBName, err)
	}
	log.Info().Str("database", cfg.DBName).Msg("Database connection established")

	return job(ctx, log, pool, cfg)
}
