package main

import (
	"github.com/spf13/cobra"

	"transfers/internal/batch/descriptions"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Build and store natural-language descriptions for all transfer rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJob(descriptions.Run)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
