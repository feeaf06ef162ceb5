// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-recall/internal/deck"
)

func newStudyCmd(app *App) *cobra.Command {
	var (
		categoryID string
		search     string
	)

	cmd := &cobra.Command{
		Use:   "study",
		Short: "Run a self-paced study session",
		Long: `Quiz yourself on your flashcards in shuffled order.

Each card shows its question; press Enter to reveal the answer, then
grade yourself. Cards added or edited during a session do not join it;
restart to pick them up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.load(ctx); err != nil {
				return err
			}

			cards := app.Manager.Filter(categoryID, search)
			quiz, err := deck.NewQuiz(cards)
			if err != nil {
				return err
			}

			return runStudyLoop(quiz, os.Stdin)
		},
	}

	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "Study one category only")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Study cards matching a search term")

	return cmd
}

func runStudyLoop(quiz *deck.Quiz, in *os.File) error {
	reader := bufio.NewReader(in)

	for {
		fmt.Printf("Studying %d card(s). Press Enter to reveal each answer, then y/n to grade yourself.\n\n", quiz.Length())

		for {
			card, ok := quiz.Current()
			if !ok {
				break
			}

			fmt.Printf("[%d/%d] Q: %s\n", quiz.Index()+1, quiz.Length(), card.Question)
			if _, err := reader.ReadString('\n'); err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			fmt.Printf("A: %s\n", card.Answer)
			fmt.Print("Did you get it right? [y/N] ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			answer := strings.ToLower(strings.TrimSpace(line))
			quiz.Answer(answer == "y" || answer == "yes")
			fmt.Println()
		}

		fmt.Printf("Session complete: %d/%d correct\n", quiz.Score(), quiz.Length())
		fmt.Print("Study again? [y/N] ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			return nil
		}
		quiz.Restart()
		fmt.Println()
	}
}
