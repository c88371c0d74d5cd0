package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"transfers/internal/batch/bkcr"
	"transfers/internal/config"
)

var bkcrCmd = &cobra.Command{
	Use:   "bkcr",
	Short: "Print the matrix of rules whose receiving side is all blanket credit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJob(func(ctx context.Context, logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) error {
			return bkcr.Run(ctx, logger, pool, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(bkcrCmd)
}
