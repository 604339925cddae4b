package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sankalpa/khaata/internal/cli"
	"github.com/sankalpa/khaata/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
	}

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())
	cmd.AddCommand(categoriesDeleteCmd())

	return cmd
}

func categoriesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's categories as a tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			userID, _ := cmd.Flags().GetString("user")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			categories, err := store.GetCategories(ctx, userID)
			if err != nil {
				return err
			}

			for _, categoryType := range []model.CategoryType{
				model.CategoryTypeIncome,
				model.CategoryTypeExpense,
				model.CategoryTypeAsset,
			} {
				var ofType []model.Category
				for _, c := range categories {
					if c.Type == categoryType {
						ofType = append(ofType, c)
					}
				}
				if len(ofType) == 0 {
					continue
				}

				fmt.Println(cli.FormatTitle(string(categoryType)))
				for _, node := range model.BuildCategoryTree(ofType) {
					marker := ""
					if node.IsDefault {
						marker = cli.SubtleStyle.Render(" (default)")
					}
					fmt.Printf("  [%d] %s%s\n", node.ID, node.Name, marker)
					for _, child := range node.Children {
						fmt.Printf("      [%d] %s\n", child.ID, child.Name)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("user", "u", "", "user ID (required)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func categoriesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, _ := cmd.Flags().GetString("user")
			categoryType, _ := cmd.Flags().GetString("type")
			parentID, _ := cmd.Flags().GetInt("parent")
			color, _ := cmd.Flags().GetString("color")
			icon, _ := cmd.Flags().GetString("icon")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			category := &model.Category{
				UserID: userID,
				Name:   args[0],
				Type:   model.NormalizeCategoryType(categoryType),
				Color:  color,
				Icon:   icon,
			}
			if parentID > 0 {
				category.ParentID = &parentID
			}

			if err := store.CreateCategory(ctx, category); err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q with ID %d", category.Name, category.ID)))
			return nil
		},
	}

	cmd.Flags().StringP("user", "u", "", "user ID (required)")
	cmd.Flags().StringP("type", "t", "expense", "category type (income, expense, asset)")
	cmd.Flags().Int("parent", 0, "parent category ID for a subcategory")
	cmd.Flags().String("color", "", "display color")
	cmd.Flags().String("icon", "", "display icon")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func categoriesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a non-default category with no transactions or children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid category ID %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if err := store.DeleteCategory(ctx, id); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Category deleted"))
			return nil
		},
	}
}
