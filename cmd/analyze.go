package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/triage/internal/config"
	"github.com/papapumpkin/triage/internal/scoring"
	"github.com/papapumpkin/triage/internal/task"
	"github.com/papapumpkin/triage/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <tasks-file>",
	Short: "Score and rank a task file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("strategy", "s", "", "weighting strategy (default from config)")
	analyzeCmd.Flags().Bool("json", false, "emit the full result as JSON on stdout")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := ui.New()

	strategy := cfg.Strategy
	if s, _ := cmd.Flags().GetString("strategy"); s != "" {
		strategy = s
	}

	tasks, err := task.LoadFile(args[0])
	if err != nil {
		return err
	}

	result, err := scoring.New(strategy).Analyze(tasks)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", args[0], err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(result)
	}
	printer.AnalysisResult(result)
	return nil
}

// writeJSON emits a result on stdout for piping into other tools.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
