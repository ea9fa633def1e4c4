package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/platewise/platewise/internal/cli"
	"github.com/platewise/platewise/internal/scheduler"
)

func purgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete photos past the retention window",
		Long: `Delete photos and their items taken before the retention window.
Day and month totals are derived data and are kept.

Examples:
  plate purge
  plate purge --retention-days 30`,
		RunE: runPurge,
	}

	cmd.Flags().Int("retention-days", 0, "retention window in days (overrides config)")

	return cmd
}

func runPurge(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	retentionDays, _ := cmd.Flags().GetInt("retention-days")

	db, cfg, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	eng, err := newEngine(db, cfg, false)
	if err != nil {
		return err
	}

	if retentionDays <= 0 {
		retentionDays = cfg.Scheduler.RetentionDays
	}
	sched := scheduler.New(eng, db, scheduler.Config{RetentionDays: retentionDays})

	deleted, err := sched.PurgeOldPhotos(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("deleted %d photo(s) older than %d days", deleted, retentionDays)))
	return nil
}
