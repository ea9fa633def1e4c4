package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/platewise/platewise/internal/scheduler"
	"github.com/platewise/platewise/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server with the nightly maintenance scheduler.
The server exposes photo ingestion, summaries, pattern flags, and goal
generation. Shuts down gracefully on interrupt.

Examples:
  plate serve
  plate serve --addr :9090 --no-scheduler`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (overrides config)")
	cmd.Flags().Bool("no-scheduler", false, "disable the nightly maintenance jobs")
	cmd.Flags().Bool("no-goals", false, "disable goal generation (no Gemini key needed)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	addr, _ := cmd.Flags().GetString("addr")
	noScheduler, _ := cmd.Flags().GetBool("no-scheduler")
	noGoals, _ := cmd.Flags().GetBool("no-goals")

	db, cfg, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	eng, err := newEngine(db, cfg, !noGoals)
	if err != nil {
		return err
	}

	if !noScheduler {
		sched := scheduler.New(eng, db, scheduler.Config{
			RecomputeSchedule: cfg.Scheduler.RecomputeSchedule,
			PurgeSchedule:     cfg.Scheduler.PurgeSchedule,
			RetentionDays:     cfg.Scheduler.RetentionDays,
		})
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()
	}

	if addr == "" {
		addr = cfg.Server.Addr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(eng, db).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
