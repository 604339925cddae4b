package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sankalpa/khaata/internal/cli"
	"github.com/sankalpa/khaata/internal/pattern"
)

func correctCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correct <transaction-id>",
		Short: "Correct a transaction's category and learn from it",
		Long: `Assign the right category to a transaction. The correction is
stored atomically with a full-confidence pattern, so future
transactions with the same description classify correctly without
asking again.`,
		Args: cobra.ExactArgs(1),
		RunE: runCorrect,
	}

	cmd.Flags().StringP("category", "c", "", "target category name or numeric ID (required)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runCorrect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	transactionID := args[0]
	categoryRef, _ := cmd.Flags().GetString("category")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	txn, err := store.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("transaction lookup failed: %w", err)
	}

	categoryID, err := strconv.Atoi(categoryRef)
	if err != nil {
		cat, nameErr := store.GetCategoryByName(ctx, txn.UserID, categoryRef)
		if nameErr != nil {
			return fmt.Errorf("category %q not found: %w", categoryRef, nameErr)
		}
		categoryID = cat.ID
	}

	learner := pattern.NewLearner(store, slog.Default())
	if err := learner.CorrectTransaction(ctx, transactionID, categoryID); err != nil {
		return fmt.Errorf("correction failed: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Corrected %q and learned the pattern", txn.Description)))
	return nil
}
