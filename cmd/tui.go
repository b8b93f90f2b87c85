package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/triage/internal/config"
	"github.com/papapumpkin/triage/internal/task"
	"github.com/papapumpkin/triage/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <tasks-file>",
	Short: "Browse a task file interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringP("strategy", "s", "", "initial weighting strategy (default from config)")

	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	strategy := cfg.Strategy
	if s, _ := cmd.Flags().GetString("strategy"); s != "" {
		strategy = s
	}

	tasks, err := task.LoadFile(args[0])
	if err != nil {
		return err
	}
	return tui.Run(args[0], tasks, strategy)
}
