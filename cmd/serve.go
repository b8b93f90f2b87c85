package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/triage/internal/config"
	"github.com/papapumpkin/triage/internal/history"
	"github.com/papapumpkin/triage/internal/httpapi"
	"github.com/papapumpkin/triage/internal/telemetry"
	"github.com/papapumpkin/triage/internal/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyze and suggest endpoints over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "listen port (default from config)")
	serveCmd.Flags().String("history", "", "SQLite file for the run-audit trail")
	serveCmd.Flags().String("telemetry", "", "JSONL file for request telemetry")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := ui.New()

	port := cfg.Server.Port
	if p, _ := cmd.Flags().GetInt("port"); p != 0 {
		port = p
	}
	historyPath := cfg.Server.HistoryPath
	if f, _ := cmd.Flags().GetString("history"); f != "" {
		historyPath = f
	}
	telemetryPath := cfg.Server.TelemetryPath
	if f, _ := cmd.Flags().GetString("telemetry"); f != "" {
		telemetryPath = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var serverCfg httpapi.ServerConfig
	if historyPath != "" {
		store, err := history.Open(ctx, historyPath)
		if err != nil {
			return err
		}
		defer store.Close()
		serverCfg.History = store
	}
	if telemetryPath != "" {
		em, err := telemetry.NewEmitter(telemetryPath)
		if err != nil {
			return err
		}
		defer em.Close()
		serverCfg.Telemetry = em
	}

	srv := httpapi.NewServer(port, &serverCfg)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	printer.Info(fmt.Sprintf("listening on %s", srv.Addr()))

	<-ctx.Done()
	printer.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
