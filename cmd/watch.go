package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/triage/internal/config"
	"github.com/papapumpkin/triage/internal/scoring"
	"github.com/papapumpkin/triage/internal/task"
	"github.com/papapumpkin/triage/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <tasks-file>",
	Short: "Re-analyze a task file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringP("strategy", "s", "", "weighting strategy (default from config)")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := ui.New()

	strategy := cfg.Strategy
	if s, _ := cmd.Flags().GetString("strategy"); s != "" {
		strategy = s
	}
	engine := scoring.New(strategy)

	// Initial pass before waiting for changes.
	tasks, err := task.LoadFile(args[0])
	if err != nil {
		return err
	}
	render(printer, engine, tasks)

	watcher, err := task.NewWatcher(args[0])
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			watcher.Stop()
			return nil
		case change, ok := <-watcher.Changes:
			if !ok {
				return nil
			}
			if change.Err != nil {
				printer.Error(change.Err.Error())
				continue
			}
			printer.WatchReload(change.File)
			render(printer, engine, change.Batch)
		}
	}
}

func render(printer *ui.Printer, engine *scoring.Engine, tasks []task.Task) {
	result, err := engine.Analyze(tasks)
	if err != nil {
		printer.Error(err.Error())
		return
	}
	printer.AnalysisResult(result)
}
