package main

import (
	"github.com/spf13/cobra"

	"transfers/internal/batch/statistics"
)

var statisticsCmd = &cobra.Command{
	Use:   "statistics",
	Short: "Build the transfer statistics workbook from the latest evaluations export",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJob(statistics.Run)
	},
}

func init() {
	rootCmd.AddCommand(statisticsCmd)
}
