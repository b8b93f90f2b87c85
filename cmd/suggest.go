package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/triage/internal/config"
	"github.com/papapumpkin/triage/internal/scoring"
	"github.com/papapumpkin/triage/internal/task"
	"github.com/papapumpkin/triage/internal/ui"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <tasks-file>",
	Short: "Recommend the top tasks to work on next",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().StringP("strategy", "s", "", "weighting strategy (default from config)")
	suggestCmd.Flags().IntP("count", "n", 0, "number of tasks to suggest (default from config)")
	suggestCmd.Flags().Bool("json", false, "emit the full result as JSON on stdout")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := ui.New()

	strategy := cfg.Strategy
	if s, _ := cmd.Flags().GetString("strategy"); s != "" {
		strategy = s
	}
	count := cfg.SuggestCount
	if n, _ := cmd.Flags().GetInt("count"); n != 0 {
		count = n
	}

	tasks, err := task.LoadFile(args[0])
	if err != nil {
		return err
	}

	result, err := scoring.New(strategy).Suggest(tasks, count)
	if err != nil {
		return fmt.Errorf("suggesting from %s: %w", args[0], err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(result)
	}
	printer.SuggestionResult(result)
	return nil
}
