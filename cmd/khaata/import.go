package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sankalpa/khaata/internal/assets"
	"github.com/sankalpa/khaata/internal/cli"
	"github.com/sankalpa/khaata/internal/engine"
	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/ofx"
	"github.com/sankalpa/khaata/internal/pattern"
	"github.com/sankalpa/khaata/internal/statement"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <statement-file>",
		Short: "Import a bank statement export (CSV or OFX)",
		Long: `Import a statement export downloaded from your bank.

CSV files go through format auto-detection (SBI, HDFC, ICICI, Axis,
Kotak, PNB, plus a generic fallback). OFX/QFX files are recognized by
extension. Rows that already exist (same date, description, and
amount) are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("user", "u", "", "user ID to import for (required)")
	cmd.Flags().StringP("source", "s", "", "source label stored on each transaction (default: detected format)")
	cmd.Flags().String("mapping", "", "explicit CSV column mapping, e.g. date=Txn Date,description=Narration,debit=Withdrawal,credit=Deposit")
	cmd.Flags().Bool("dry-run", false, "parse and classify without saving")
	_ = cmd.MarkFlagRequired("user")

	_ = viper.BindPFlag("import.source", cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	userID, _ := cmd.Flags().GetString("user")
	mappingSpec, _ := cmd.Flags().GetString("mapping")
	source := viper.GetString("import.source")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read statement file: %w", err)
	}

	var parsed []model.ParsedTransaction
	var dropped int

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		parsed, err = ofx.NewParser(slog.Default()).Parse(bytes.NewReader(data))
		if err != nil {
			return err
		}
	default:
		parser := statement.NewParser(slog.Default())
		var result *statement.ParseResult
		if mappingSpec != "" {
			mapping, mapErr := parseMappingSpec(mappingSpec)
			if mapErr != nil {
				return mapErr
			}
			result, err = parser.ParseWithMapping(ctx, data, mapping, source)
		} else {
			result, err = parser.Parse(ctx, data, source)
		}
		if err != nil {
			return err
		}
		parsed = result.Transactions
		dropped = result.Dropped
		slog.Info("statement parsed",
			"format", result.DetectedFormat,
			"rows", len(parsed),
			"dropped", dropped)
	}

	if viper.GetBool("import.dry_run") {
		fmt.Println(cli.FormatWarning("Dry run mode - not saving to database"))
		printParsedPreview(parsed, dropped)
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	learner := pattern.NewLearner(store, slog.Default())
	eng := engine.New(store, newClassifier(store), slog.Default(),
		engine.WithLearner(learner),
		engine.WithAssetHandler(assets.NewHandler(store, slog.Default())))

	result, err := eng.Import(ctx, userID, parsed)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Imported %d transactions (%d duplicates skipped, %d dropped rows, %d categorized)",
		result.Imported, result.Duplicates, dropped, result.Categorized)))
	return nil
}

// parseMappingSpec turns "date=Txn Date,description=Narration,..." into
// a ColumnMapping.
func parseMappingSpec(spec string) (statement.ColumnMapping, error) {
	var mapping statement.ColumnMapping
	for _, pair := range strings.Split(spec, ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return mapping, fmt.Errorf("invalid mapping entry %q, expected key=column", pair)
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "date":
			mapping.Date = value
		case "description":
			mapping.Description = value
		case "amount":
			mapping.Amount = value
		case "debit":
			mapping.Debit = value
		case "credit":
			mapping.Credit = value
		case "drcr":
			mapping.DrCr = value
		case "merchant":
			mapping.Merchant = value
		default:
			return mapping, fmt.Errorf("unknown mapping key %q", key)
		}
	}
	if mapping.Date == "" || mapping.Description == "" {
		return mapping, fmt.Errorf("mapping must include at least date and description columns")
	}
	return mapping, nil
}

func printParsedPreview(parsed []model.ParsedTransaction, dropped int) {
	fmt.Println(cli.FormatTitle("Parsed transactions"))
	limit := len(parsed)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		p := parsed[i]
		fmt.Printf("  %s  %10.2f  %-7s  %s\n",
			p.Date.Format("2006-01-02"), p.Amount, p.Type, p.Description)
	}
	if len(parsed) > limit {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  ... and %d more", len(parsed)-limit)))
	}
	fmt.Println(cli.FormatInfo(fmt.Sprintf("%d rows parsed, %d dropped", len(parsed), dropped)))
}
