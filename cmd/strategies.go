package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/triage/internal/ui"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the built-in weighting strategies",
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.New().StrategyTable()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
