// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-recall/internal/deck"
	"github.com/mtreilly/arc-recall/internal/output"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage the category tree",
		Long:  "Create, rename, move, and delete the categories your flashcards are filed under.",
	}

	cmd.AddCommand(newCategoryAddCmd(app))
	cmd.AddCommand(newCategoryListCmd(app))
	cmd.AddCommand(newCategoryUpdateCmd(app))
	cmd.AddCommand(newCategoryDeleteCmd(app))

	return cmd
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var (
		parentID string
		out      output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long:  "Create a category, optionally nested under an existing parent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.load(ctx); err != nil {
				return err
			}

			cat, err := app.Manager.AddCategory(ctx, args[0], parentID)
			if err != nil {
				return fmt.Errorf("add category: %w", err)
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(cat)
			}

			fmt.Printf("Category created: %s\n", cat.ID)
			fmt.Printf("Name: %s\n", cat.Name)
			if cat.ParentID != "" {
				fmt.Printf("Parent: %s\n", cat.ParentID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&parentID, "parent", "p", "", "Parent category ID (optional)")
	out.AddOutputFlags(cmd, output.OutputJSON)

	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	var (
		tree bool
		out  output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Long:  "List all categories, flat or as an indented tree.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.load(ctx); err != nil {
				return err
			}

			cats := app.Manager.Categories()

			if out.Is(output.OutputJSON) {
				return output.JSON(cats)
			}

			if len(cats) == 0 {
				fmt.Println("No categories found.")
				return nil
			}

			if tree {
				printCategoryTree(cats)
				return nil
			}

			table := output.NewTable("ID", "Name", "Parent", "Cards")
			counts := make(map[string]int)
			for _, f := range app.Manager.Flashcards() {
				counts[f.CategoryID]++
			}
			for _, c := range cats {
				parent := ""
				if c.ParentID != "" {
					if p, ok := app.Manager.CategoryByID(c.ParentID); ok {
						parent = p.Name
					} else {
						parent = c.ParentID
					}
				}
				table.AddRow(truncate(c.ID, 8), c.Name, parent, fmt.Sprintf("%d", counts[c.ID]))
			}
			table.Render()

			fmt.Printf("\nTotal: %d categor(ies)\n", len(cats))
			return nil
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "Render as an indented tree")
	out.AddOutputFlags(cmd, output.OutputTable)

	return cmd
}

// printCategoryTree renders categories indented under their parents.
// Categories whose parent is missing are treated as roots so a broken
// pointer never hides a subtree.
func printCategoryTree(cats []deck.Category) {
	byID := make(map[string]bool, len(cats))
	for _, c := range cats {
		byID[c.ID] = true
	}
	children := make(map[string][]deck.Category)
	var roots []deck.Category
	for _, c := range cats {
		if c.ParentID == "" || !byID[c.ParentID] {
			roots = append(roots, c)
		} else {
			children[c.ParentID] = append(children[c.ParentID], c)
		}
	}

	var render func(c deck.Category, depth int)
	render = func(c deck.Category, depth int) {
		for i := 0; i < depth; i++ {
			fmt.Print("  ")
		}
		fmt.Printf("%s  (%s)\n", c.Name, truncate(c.ID, 8))
		for _, child := range children[c.ID] {
			render(child, depth+1)
		}
	}
	for _, r := range roots {
		render(r, 0)
	}
}

func newCategoryUpdateCmd(app *App) *cobra.Command {
	var (
		name     string
		parentID string
		out      output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "update <category-id>",
		Short: "Rename or move a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.load(ctx); err != nil {
				return err
			}

			id := args[0]
			current, ok := app.Manager.CategoryByID(id)
			if !ok {
				return deck.ErrCategoryNotFound
			}

			// Unset flags keep the current values.
			if !cmd.Flags().Changed("name") {
				name = current.Name
			}
			if !cmd.Flags().Changed("parent") {
				parentID = current.ParentID
			}

			cat, err := app.Manager.UpdateCategory(ctx, id, name, parentID)
			if err != nil {
				return fmt.Errorf("update category: %w", err)
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(cat)
			}

			fmt.Printf("Category updated: %s\n", cat.ID)
			fmt.Printf("Name: %s\n", cat.Name)
			if cat.ParentID != "" {
				fmt.Printf("Parent: %s\n", cat.ParentID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	cmd.Flags().StringVarP(&parentID, "parent", "p", "", "New parent category ID (empty for top level)")
	out.AddOutputFlags(cmd, output.OutputJSON)

	return cmd
}

func newCategoryDeleteCmd(app *App) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category and its whole subtree",
		Long:  "Remove a category, every category nested under it, and all flashcards filed in any of them.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.load(ctx); err != nil {
				return err
			}

			id := args[0]
			before := len(app.Manager.Categories())
			beforeCards := len(app.Manager.Flashcards())

			if err := app.Manager.DeleteCategory(ctx, id); err != nil {
				return fmt.Errorf("delete category: %w", err)
			}

			removed := before - len(app.Manager.Categories())
			removedCards := beforeCards - len(app.Manager.Flashcards())
			fmt.Printf("Deleted %d categor(ies) and %d flashcard(s)\n", removed, removedCards)
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputJSON)
	return cmd
}
