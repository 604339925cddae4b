package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sankalpa/khaata/internal/cli"
	"github.com/sankalpa/khaata/internal/config"
	"github.com/sankalpa/khaata/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

This command ensures your local database has all the required tables
and indexes for the application to function properly.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	statusOnly, _ := cmd.Flags().GetBool("status")

	dbPath := config.DatabasePath()
	slog.Info("Opening database", "database", dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStorage(store)

	if statusOnly {
		version, versionErr := store.SchemaVersion(ctx)
		if versionErr != nil {
			return versionErr
		}
		if version == storage.ExpectedSchemaVersion {
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Schema is up to date (version %d)", version)))
		} else {
			fmt.Println(cli.FormatWarning(fmt.Sprintf(
				"Schema at version %d, latest is %d; run 'khaata migrate' to update",
				version, storage.ExpectedSchemaVersion)))
		}
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Database schema is up to date"))
	return nil
}
