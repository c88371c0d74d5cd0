package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"transfers/internal/batch/departments"
	"transfers/internal/config"
)

var routeRule string

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Decide which department should review each transfer rule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJob(func(ctx context.Context, logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) error {
			return departments.Run(ctx, logger, pool, cfg, routeRule)
		})
	},
}

func init() {
	routeCmd.Flags().StringVar(&routeRule, "rule", "", "route a single rule key instead of all rules")
	rootCmd.AddCommand(routeCmd)
}
