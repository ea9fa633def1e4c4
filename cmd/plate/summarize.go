package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/platewise/platewise/internal/cli"
	"github.com/platewise/platewise/internal/model"
)

func summarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Show or recompute nutrition summaries",
	}

	cmd.AddCommand(summarizeDayCmd())
	cmd.AddCommand(summarizeMonthCmd())

	return cmd
}

func summarizeDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show a day's category counts",
		Long: `Show the per-category counts for one user and calendar day.

Examples:
  plate summarize day --user user-1 --date 2026-08-05`,
		RunE: runSummarizeDay,
	}

	cmd.Flags().StringP("user", "u", "", "user ID (required)")
	cmd.Flags().StringP("date", "d", "", "day to show, format 2026-08-05 (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runSummarizeDay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	dateStr, _ := cmd.Flags().GetString("date")

	date, err := model.ParseDay(dateStr)
	if err != nil {
		return err
	}

	db, _, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	total, err := db.GetDayTotal(ctx, userID, date)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderDayTotal(total))
	return nil
}

func summarizeMonthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Recompute and show month totals",
		Long: `Recompute the month total for one user, or for every user with data
in the month when --all is given. The month total sums the earliest
three distinct days with data and re-evaluates pattern flags.

Examples:
  plate summarize month --user user-1 --month 2026-08
  plate summarize month --month 2026-08 --all`,
		RunE: runSummarizeMonth,
	}

	cmd.Flags().StringP("user", "u", "", "user ID")
	cmd.Flags().StringP("month", "m", "", "month to recompute, format 2026-08 (required)")
	cmd.Flags().Bool("all", false, "recompute every user with data in the month")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runSummarizeMonth(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	monthStr, _ := cmd.Flags().GetString("month")
	all, _ := cmd.Flags().GetBool("all")

	month, err := model.ParseMonth(monthStr)
	if err != nil {
		return err
	}
	if !all && userID == "" {
		return fmt.Errorf("either --user or --all is required")
	}

	db, cfg, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	eng, err := newEngine(db, cfg, false)
	if err != nil {
		return err
	}

	if !all {
		total, err := eng.RecomputeMonth(ctx, userID, month)
		if err != nil {
			return err
		}
		fmt.Println(cli.RenderMonthTotal(total))
		return nil
	}

	users, err := db.ListUsersWithDayTotals(ctx, month)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println(cli.FormatWarning("no users with data in " + string(month)))
		return nil
	}

	bar := progressbar.Default(int64(len(users)), "recomputing months")
	var failed int
	for _, id := range users {
		if _, err := eng.RecomputeMonth(ctx, id, month); err != nil {
			failed++
		}
		_ = bar.Add(1)
	}

	if failed > 0 {
		return fmt.Errorf("recompute failed for %d of %d users", failed, len(users))
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("recomputed %s for %d user(s)", month, len(users))))
	return nil
}
