// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-recall/internal/deck"
	"github.com/mtreilly/arc-recall/internal/output"
)

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage flashcards",
		Long:  "Create, edit, search, and remove flashcards.",
	}

	cmd.AddCommand(newCardAddCmd(app))
	cmd.AddCommand(newCardListCmd(app))
	cmd.AddCommand(newCardUpdateCmd(app))
	cmd.AddCommand(newCardDeleteCmd(app))

	return cmd
}

func newCardAddCmd(app *App) *cobra.Command {
	var (
		question   string
		answer     string
		categoryID string
		out        output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new flashcard",
		Long:  "Create a flashcard in a category. The answer may be left empty and filled in later.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.load(ctx); err != nil {
				return err
			}

			card, err := app.Manager.AddFlashcard(ctx, question, answer, categoryID)
			if err != nil {
				return fmt.Errorf("add flashcard: %w", err)
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(card)
			}

			fmt.Printf("Flashcard created: %s\n", card.ID)
			fmt.Printf("Question: %s\n", truncate(card.Question, 60))
			fmt.Printf("Answer: %s\n", truncate(card.Answer, 60))
			return nil
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "Question text (required)")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "Answer text")
	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "Category ID (required)")
	out.AddOutputFlags(cmd, output.OutputJSON)

	return cmd
}

func newCardListCmd(app *App) *cobra.Command {
	var (
		categoryID string
		search     string
		limit      int
		out        output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List flashcards",
		Long:  "List flashcards, optionally narrowed to one category and a free-text search over questions and answers.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.load(ctx); err != nil {
				return err
			}

			cards := app.Manager.Filter(categoryID, search)
			if limit > 0 && len(cards) > limit {
				cards = cards[:limit]
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(cards)
			}

			if len(cards) == 0 {
				fmt.Println("No flashcards found.")
				return nil
			}

			table := output.NewTable("ID", "Question", "Answer", "Category")
			for _, f := range cards {
				catName := f.CategoryID
				if c, ok := app.Manager.CategoryByID(f.CategoryID); ok {
					catName = c.Name
				}
				table.AddRow(truncate(f.ID, 8), truncate(f.Question, 40), truncate(f.Answer, 30), catName)
			}
			table.Render()

			fmt.Printf("\nTotal: %d flashcard(s)\n", len(cards))
			return nil
		},
	}

	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "Filter by category ID")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by question/answer text")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of results")
	out.AddOutputFlags(cmd, output.OutputTable)

	return cmd
}

func newCardUpdateCmd(app *App) *cobra.Command {
	var (
		question   string
		answer     string
		categoryID string
		out        output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "update <flashcard-id>",
		Short: "Edit a flashcard",
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
			current, ok := app.Manager.FlashcardByID(id)
			if !ok {
				return deck.ErrFlashcardNotFound
			}

			// Unset flags keep the current values.
			if !cmd.Flags().Changed("question") {
				question = current.Question
			}
			if !cmd.Flags().Changed("answer") {
				answer = current.Answer
			}
			if !cmd.Flags().Changed("category") {
				categoryID = current.CategoryID
			}

			card, err := app.Manager.UpdateFlashcard(ctx, id, question, answer, categoryID)
			if err != nil {
				return fmt.Errorf("update flashcard: %w", err)
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(card)
			}

			fmt.Printf("Flashcard updated: %s\n", card.ID)
			fmt.Printf("Question: %s\n", truncate(card.Question, 60))
			fmt.Printf("Answer: %s\n", truncate(card.Answer, 60))
			return nil
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "New question text")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "New answer text")
	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "New category ID")
	out.AddOutputFlags(cmd, output.OutputJSON)

	return cmd
}

func newCardDeleteCmd(app *App) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "delete <flashcard-id> [flashcard-id...]",
		Short: "Delete one or more flashcards",
		Long:  "Remove flashcards by ID. Passing several IDs deletes them as one batch.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.load(ctx); err != nil {
				return err
			}

			if len(args) == 1 {
				if err := app.Manager.DeleteFlashcard(ctx, args[0]); err != nil {
					return fmt.Errorf("delete flashcard: %w", err)
				}
				fmt.Printf("Flashcard deleted: %s\n", args[0])
				return nil
			}

			if err := app.Manager.BulkDeleteFlashcards(ctx, args); err != nil {
				return fmt.Errorf("delete flashcards: %w", err)
			}
			fmt.Printf("Deleted %d flashcard(s)\n", len(args))
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputJSON)
	return cmd
}
