// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-recall/internal/output"
)

func newStatsCmd(app *App) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show deck statistics",
		Long:  `Display statistics about your deck: category and card counts, cards per category, empty categories.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.load(ctx); err != nil {
				return err
			}

			cats := app.Manager.Categories()
			cards := app.Manager.Flashcards()

			perCategory := make(map[string]int, len(cats))
			for _, f := range cards {
				perCategory[f.CategoryID]++
			}

			empty := 0
			for _, c := range cats {
				if perCategory[c.ID] == 0 {
					empty++
				}
			}

			missingAnswer := 0
			for _, f := range cards {
				if f.Answer == "" {
					missingAnswer++
				}
			}

			if out.Is(output.OutputJSON) {
				byName := make(map[string]int, len(cats))
				for _, c := range cats {
					byName[c.Name] = perCategory[c.ID]
				}
				stats := map[string]any{
					"categories":       len(cats),
					"flashcards":       len(cards),
					"by_category":      byName,
					"empty_categories": empty,
					"missing_answers":  missingAnswer,
				}
				return output.JSON(stats)
			}

			fmt.Printf("Categories: %d (%d empty)\n", len(cats), empty)
			fmt.Printf("Flashcards: %d (%d without an answer)\n\n", len(cards), missingAnswer)

			if len(cats) > 0 {
				table := output.NewTable("Category", "Cards")
				for _, c := range cats {
					table.AddRow(c.Name, fmt.Sprintf("%d", perCategory[c.ID]))
				}
				table.Render()
			}
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
