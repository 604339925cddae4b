package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/sankalpa/khaata/internal/cli"
	"github.com/sankalpa/khaata/internal/engine"
	"github.com/sankalpa/khaata/internal/service"
)

func recategorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recategorize",
		Short: "Re-run the classifier over a user's whole history",
		Long: `Re-classify every stored transaction, including ones that already
have a category. A new suggestion is applied only when it differs from
the current category and the classifier is confident about it, so
running this repeatedly is safe.`,
		RunE: runRecategorize,
	}

	cmd.Flags().StringP("user", "u", "", "user ID to recategorize (required)")
	cmd.Flags().String("transaction", "", "recategorize a single transaction ID instead")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runRecategorize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	transactionID, _ := cmd.Flags().GetString("transaction")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	eng := engine.New(store, newClassifier(store), slog.Default())

	if transactionID != "" {
		updated, oneErr := eng.RecategorizeOne(ctx, transactionID)
		if oneErr != nil {
			return oneErr
		}
		if updated {
			fmt.Println(cli.FormatSuccess("Transaction recategorized"))
		} else {
			fmt.Println(cli.FormatInfo("No change"))
		}
		return nil
	}

	txns, err := store.GetTransactionsByUser(ctx, userID, service.TransactionFilter{})
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(txns),
		progressbar.OptionSetDescription("Recategorizing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	result, err := eng.RecategorizeAll(ctx, userID, func() { _ = bar.Add(1) })
	if err != nil {
		return fmt.Errorf("recategorization failed: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Recategorized %d of %d transactions (%d failed)",
		result.Updated, result.Total, result.Failed)))
	return nil
}
