package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sankalpa/khaata/internal/cli"
	"github.com/sankalpa/khaata/internal/pattern"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Inspect and maintain learned categorization patterns",
	}

	cmd.PersistentFlags().StringP("user", "u", "", "user ID (required)")
	_ = cmd.MarkPersistentFlagRequired("user")

	cmd.AddCommand(patternsListCmd())
	cmd.AddCommand(patternsStatsCmd())
	cmd.AddCommand(patternsCleanupCmd())

	return cmd
}

func patternsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List learned patterns, most confident first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			userID, _ := cmd.Flags().GetString("user")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			patterns, err := pattern.NewLearner(store, slog.Default()).ListPatterns(ctx, userID)
			if err != nil {
				return err
			}
			if len(patterns) == 0 {
				fmt.Println(cli.FormatInfo("No learned patterns yet"))
				return nil
			}

			fmt.Println(cli.FormatTitle("Learned patterns"))
			for _, p := range patterns {
				origin := "auto"
				if p.IsUserCorrection {
					origin = "corrected"
				}
				cat, catErr := store.GetCategoryByID(ctx, p.CategoryID)
				name := "?"
				if catErr == nil {
					name = cat.Name
				}
				fmt.Printf("  %.2f  %-9s  %-30s → %s\n",
					p.Confidence, origin, truncate(p.Description, 30), name)
			}
			return nil
		},
	}
}

func patternsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show pattern store statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			userID, _ := cmd.Flags().GetString("user")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			stats, err := pattern.NewLearner(store, slog.Default()).Stats(ctx, userID)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderBox("Pattern statistics", fmt.Sprintf(
				"Total patterns:    %d\nUser corrections:  %d\nAuto-learned:      %d\nAvg confidence:    %.2f",
				stats.Total, stats.UserCorrections, stats.AIPatterns, stats.AvgConfidence)))
			return nil
		},
	}
}

func patternsCleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete stale auto-learned patterns",
		Long: `Delete auto-learned patterns that have not been refreshed within
the retention window. Patterns created from your corrections are kept
forever regardless of age.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			userID, _ := cmd.Flags().GetString("user")
			days, _ := cmd.Flags().GetInt("retention-days")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			deleted, err := pattern.NewLearner(store, slog.Default()).Cleanup(ctx, userID, days)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %d stale patterns", deleted)))
			return nil
		},
	}

	cmd.Flags().Int("retention-days", pattern.DefaultRetentionDays, "age in days before auto-learned patterns expire")
	return cmd
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
