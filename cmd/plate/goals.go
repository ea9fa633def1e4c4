package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platewise/platewise/internal/cli"
	"github.com/platewise/platewise/internal/common"
	"github.com/platewise/platewise/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Generate and show monthly goals",
	}

	cmd.AddCommand(goalsGenerateCmd())
	cmd.AddCommand(goalsShowCmd())

	return cmd
}

func goalsGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate goals for a month",
		Long: `Generate three personalized goals for one user and month from their
month total and pattern flags, replacing any earlier set. Requires a
Gemini API key (PLATE_GEMINI_API_KEY or gemini.api_key in the config).

Examples:
  plate goals generate --user user-1 --month 2026-08`,
		RunE: runGoalsGenerate,
	}

	cmd.Flags().StringP("user", "u", "", "user ID (required)")
	cmd.Flags().StringP("month", "m", "", "month, format 2026-08 (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runGoalsGenerate(cmd *cobra.Command, _ []string) error {
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

	eng, err := newEngine(db, cfg, true)
	if err != nil {
		return err
	}

	set, err := eng.GenerateGoals(ctx, userID, month)
	if errors.Is(err, common.ErrNoItems) {
		fmt.Println(cli.FormatWarning("no items logged in " + string(month) + " yet, nothing to base goals on"))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderGoalSet(set))
	return nil
}

func goalsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored goals for a month",
		RunE:  runGoalsShow,
	}

	cmd.Flags().StringP("user", "u", "", "user ID (required)")
	cmd.Flags().StringP("month", "m", "", "month, format 2026-08 (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runGoalsShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	monthStr, _ := cmd.Flags().GetString("month")

	month, err := model.ParseMonth(monthStr)
	if err != nil {
		return err
	}

	db, _, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	set, err := db.GetGoalSet(ctx, userID, month)
	if errors.Is(err, common.ErrNotFound) {
		fmt.Println(cli.FormatWarning("no goals for " + string(month) + " yet, run: plate goals generate"))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderGoalSet(set))
	return nil
}
