package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platewise/platewise/internal/cli"
	"github.com/platewise/platewise/internal/common"
	"github.com/platewise/platewise/internal/model"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Show a month's pattern flags",
		Long: `Show the stored month total and its eating pattern flags for one user.
Recomputes the month first when no total exists yet.

Examples:
  plate patterns --user user-1 --month 2026-08`,
		RunE: runPatterns,
	}

	cmd.Flags().StringP("user", "u", "", "user ID (required)")
	cmd.Flags().StringP("month", "m", "", "month to show, format 2026-08 (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runPatterns(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	monthStr, _ := cmd.Flags().GetString("month")

	month, err := model.ParseMonth(monthStr)
	if err != nil {
		return err
	}

	db, cfg, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	total, err := db.GetMonthTotal(ctx, userID, month)
	if errors.Is(err, common.ErrNotFound) {
		eng, engErr := newEngine(db, cfg, false)
		if engErr != nil {
			return engErr
		}
		total, err = eng.RecomputeMonth(ctx, userID, month)
	}
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderMonthTotal(total))
	return nil
}
