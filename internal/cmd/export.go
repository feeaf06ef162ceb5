// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-recall/internal/deck"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		format   string // "json", "yaml", "apkg"
		outPath  string // file path or "-" for stdout
		deckName string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your deck to various formats",
		Long:  "Export categories and flashcards as JSON or YAML for backup, or as an Anki .apkg package.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.load(ctx); err != nil {
				return err
			}

			out := os.Stdout
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			snap := app.Manager.Snapshot()

			switch format {
			case "json":
				return deck.ExportJSON(snap, out)
			case "yaml":
				return deck.ExportYAML(snap, out)
			case "apkg":
				if outPath == "" || outPath == "-" {
					return fmt.Errorf("apkg export requires --output <file>")
				}
				exporter := deck.NewAnkiExporter(deckName)
				if err := exporter.ExportCards(snap.Flashcards, out); err != nil {
					return fmt.Errorf("export apkg: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Exported %d flashcard(s) to %s\n", len(snap.Flashcards), outPath)
				return nil
			default:
				return fmt.Errorf("unsupported format: %s (choose json, yaml, apkg)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json, yaml, apkg")
	cmd.Flags().StringVarP(&outPath, "output", "o", "-", "Output file (default: stdout)")
	cmd.Flags().StringVar(&deckName, "deck-name", "", "Deck name for apkg export")

	return cmd
}
