package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sankalpa/khaata/internal/cli"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	cmd.AddCommand(usersAddCmd())
	cmd.AddCommand(usersDeleteCmd())

	return cmd
}

func usersAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a user with the default category set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			user, err := store.CreateUser(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created user %q", user.Name)))
			fmt.Println(cli.FormatInfo("User ID: " + user.ID))
			return nil
		},
	}
}

func usersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user and everything they own",
		Long: `Delete a user. Their categories, transactions, learned patterns,
and assets are removed with them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if err := store.DeleteUser(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete user: %w", err)
			}

			fmt.Println(cli.FormatSuccess("User deleted"))
			return nil
		},
	}
}
